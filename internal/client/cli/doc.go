// Package cli provides the interactive gophnotes terminal client.
//
// It wires configuration, the local state store, the REST client, the
// session, and the note pages, then runs a REPL over them. Every command
// works on the current route: the list on screen, the open note or the
// new-note form. After each command the session gate is re-applied, so a
// rejected token sends the user back to the login page.
//
// Commands:
//   - register, login, logout, whoami
//   - home (ls), archives, search <text>, go <path>
//   - open, archive, unarchive, toggle, delete (rm) by list position or note id
//   - add, save, cancel
//   - notifications, dismiss, lang, theme, settings
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
