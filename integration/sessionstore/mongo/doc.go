// Package mongo implements session.Store on a MongoDB collection using
// go.mongodb.org/mongo-driver/v2.
//
//	db, err := mongo.NewWithDatabase(ctx, cfg, "") // integration/database/mongo
//	store := mongostore.New[attributes.Map](db, "")
//	if err := store.EnsureIndexes(ctx); err != nil {
//		return err
//	}
//
// Documents are keyed by the session UUID string. A TTL index on expires_at lets
// the server remove expired sessions; DeleteExpired covers the monitor's delay.
package mongo
