// Package store provides file-based persistence for the vault.
//
// The vault is a single JSON document mapping each username to its password
// verifier and its list of encrypted blobs:
//
//	{
//	  "alice": {
//	    "password": "4fa0dc44...",
//	    "data": ["gAAAAABn..."]
//	  }
//	}
//
// A missing file is an empty vault. Writes go to a temp file in the same
// directory, are synced, then renamed over the target. A sidecar lock file
// serialises access from several processes.
package store
