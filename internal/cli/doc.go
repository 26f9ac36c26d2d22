// Package cli is the interactive terminal client of the travel journal.
//
// App waits until the persisted state has been rehydrated, then runs a
// read-eval-print loop over the journal, auth and profile services.
//
// Commands
//
//	help                 show available commands
//	register             save name and email to the profile
//	login / logout       start or end the local session
//	add                  add an entry (text, note, photo URI, location)
//	list | l             list entries, oldest first
//	show [id]            show one entry
//	delete [id]          delete one entry
//	map                  list entries with coordinates
//	profile / setprofile show or edit the profile
//	status               persistence and session status
//	exit | quit          leave the program
package cli
