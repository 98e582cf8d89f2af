package main

import (
	"os"

	"github.com/blevesearch/bleve/v2"
	"github.com/linkup-social/linkup/graph"
	"github.com/linkup-social/linkup/search"
	"github.com/linkup-social/linkup/server"
	"github.com/linkup-social/linkup/utils"
	"github.com/linkup-social/linkup/utils/dotenv"
	flagutil "github.com/linkup-social/linkup/utils/flag"
	. "github.com/linkup-social/linkup/utils/log"
)

func main() {
	flagutil.Parse()
	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}
	InitLogger()

	db, err := utils.GetDBConnection()
	if err != nil {
		Log.Fatal("fail to connect to database: ", err)
	}
	utils.DatabaseSetupAndMigration(db)

	var cache *utils.RedisClient
	if os.Getenv("REDIS_HOST") != "" {
		cache = utils.GetRedisClient()
		Log.Info("trending cache enabled")
	}

	indexer := search.NewIndexer(db, openSearchIndex())
	store := graph.NewGormStore(db)
	engine := search.NewEngine(store, indexer)
	trender := search.NewTrender(store, cache)

	handler := server.NewHandler(store, engine, trender, indexer)
	router := server.NewRouter(handler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	Log.Info("api server starts up on port ", port)
	if err := router.Run(":" + port); err != nil {
		Log.Fatal("api server exited: ", err)
	}
}

// openSearchIndex mounts the optional full-text mirror. Without
// SEARCH_INDEX_PATH search falls back to direct table scans.
func openSearchIndex() bleve.Index {
	path := os.Getenv("SEARCH_INDEX_PATH")
	if path == "" {
		return nil
	}
	index, err := bleve.Open(path)
	if err == bleve.ErrorIndexPathDoesNotExist {
		index, err = bleve.New(path, bleve.NewIndexMapping())
	}
	if err != nil {
		Log.Warn("fail to open full-text index, continuing without it: ", err)
		return nil
	}
	Log.Info("full-text index mounted at ", path)
	return index
}
