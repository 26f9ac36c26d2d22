// Package persist mirrors a state.Store to durable key-value storage and
// restores it at startup.
//
// Lifecycle:
//
//	p, _ := persist.New(storage, persist.Config{}, log)
//	p.Rehydrate(ctx)     // REHYDRATING -> REHYDRATED, closes Ready()
//	p.Store().Dispatch(...)
//	p.Close(ctx)         // writes whatever is pending
//
// The blob under Config.Key is JSON:
//
//	{"version":1,"state":{"journal":{...},"session":{...}}}
//
// Writes happen on one goroutine. A dispatch that changes the snapshot
// queues it; if a write is already waiting, the newer snapshot replaces it.
// Read and write failures are logged and never reach the store.
package persist
