// Package session is the entry point a user interface drives.
//
// A Session owns one login guard and at most one authenticated username.
// Register, Login and Logout manage identity; StoreSecret, ListSecrets and
// DecryptSecret need a logged-in user.
package session
