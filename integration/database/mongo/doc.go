// Package mongo provides MongoDB client initialization and health checking on top of
// go.mongodb.org/mongo-driver/v2.
//
// New and NewWithDatabase retry the initial ping to ride out cold starts of managed
// clusters and brief network interruptions:
//
//	var cfg mongo.Config
//	config.MustLoad(&cfg)
//
//	db, err := mongo.NewWithDatabase(ctx, cfg, "")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer db.Client().Disconnect(ctx)
//
// # Configuration
//
//	MONGODB_URL              (required)
//	MONGODB_CONNECT_TIMEOUT  (default: 10s)
//	MONGODB_MAX_POOL_SIZE    (default: 100)
//	MONGODB_MIN_POOL_SIZE    (default: 1)
//	MONGODB_RETRY_ATTEMPTS   (default: 3)
//	MONGODB_RETRY_INTERVAL   (default: 2s)
//	MONGODB_DATABASE         (default: sessions)
package mongo
