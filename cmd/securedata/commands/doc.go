// Package commands defines the securedata CLI.
//
// Commands
//
//   - register   Create a user
//   - store      Encrypt text under a passkey and save it
//   - list       Print your stored tokens, numbered from 1
//   - decrypt    Decrypt an entry by number or a pasted token
//   - shell      Interactive session; failed logins lock it for a while
//
// # Implementation
//
// The root command layers defaults, the optional --config file and flags,
// then builds the app wiring before any subcommand runs. One-shot commands
// log in with a fresh session each time; the login guard therefore only
// carries across attempts inside a shell.
package commands
