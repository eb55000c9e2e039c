package commands

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"securedata/internal/crypto"
	"securedata/internal/domain"
)

func storeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store <data>",
		Short: "Encrypt data under a passkey and save it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			s, err := login(p)
			if err != nil {
				return err
			}
			key, err := p.orPrompt(passkey, "Passkey: ", true)
			if err != nil {
				return err
			}
			if _, err := s.StoreSecret(key, args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Data encrypted and stored successfully.")
			return nil
		},
	}
	cmd.Flags().StringVarP(&passkey, "passkey", "k", "", "passkey (prompted if empty)")
	return cmd
}

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your encrypted entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			s, err := login(p)
			if err != nil {
				return err
			}
			blobs, err := s.ListSecrets()
			if err != nil {
				return err
			}
			printBlobs(cmd.OutOrStdout(), blobs)
			return nil
		},
	}
}

func decryptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decrypt <entry-number|token>",
		Short: "Decrypt one of your entries or a pasted token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			s, err := login(p)
			if err != nil {
				return err
			}
			blobs, err := s.ListSecrets()
			if err != nil {
				return err
			}
			key, err := p.orPrompt(passkey, "Passkey: ", true)
			if err != nil {
				return err
			}
			pt, err := s.DecryptSecret(resolveEntry(args[0], blobs), key)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Decrypted data: %s\n", pt)
			return nil
		},
	}
	cmd.Flags().StringVarP(&passkey, "passkey", "k", "", "passkey (prompted if empty)")
	return cmd
}

// resolveEntry maps a 1-based entry number to its token; anything else is
// taken as a token.
func resolveEntry(arg string, blobs []domain.EncryptedBlob) string {
	if n, err := strconv.Atoi(arg); err == nil && n >= 1 && n <= len(blobs) {
		return blobs[n-1].String()
	}
	return arg
}

func printBlobs(w io.Writer, blobs []domain.EncryptedBlob) {
	if len(blobs) == 0 {
		fmt.Fprintln(w, "No data stored yet.")
		return
	}
	for i, b := range blobs {
		if at, err := crypto.TokenTime(b); err == nil {
			fmt.Fprintf(w, "%d. [%s] %s\n", i+1, at.UTC().Format("2006-01-02 15:04:05Z"), b)
			continue
		}
		fmt.Fprintf(w, "%d. %s\n", i+1, b)
	}
}
