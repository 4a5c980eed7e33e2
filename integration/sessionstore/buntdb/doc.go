// Package buntdb implements session.Store on github.com/tidwall/buntdb, an embedded
// key/value database with native key expiry.
//
// It needs no server, which makes it the default backend of the sessattr CLI:
//
//	store, err := buntdb.Open[attributes.Map]("sessions.db")
//	if err != nil {
//		return err
//	}
//	defer store.Close()
//
//	mgr := session.NewManager[attributes.Map](store, 24*time.Hour, 5*time.Minute)
//
// Keys are "session:id:<uuid>" (JSON record) and "session:token:<token>" (the ID).
// Both carry a TTL equal to the time left on the session.
package buntdb
