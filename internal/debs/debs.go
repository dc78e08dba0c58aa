package deps

import (
	"log"

	"github.com/devtrio/wanderswipe/config"
	"github.com/devtrio/wanderswipe/internal/cache"
	"github.com/devtrio/wanderswipe/internal/http/mistral"
	"github.com/devtrio/wanderswipe/internal/http/places"
	"github.com/devtrio/wanderswipe/internal/store"
	"github.com/devtrio/wanderswipe/util/storage"
	"github.com/devtrio/wanderswipe/util/websockets"
)

type Dependencies struct {
	Cache      cache.Store
	Mistral    *mistral.Client
	Places     *places.Client
	Store      *store.Store
	Cloudinary *storage.Cloudinary
	WebSocket  *websockets.WebSocketManager
}

func New(cfg *config.Config) *Dependencies {
	var cacheStore cache.Store
	if cfg.CacheDir != "" {
		fileStore, err := cache.NewFile(cfg.CacheDir)
		if err != nil {
			log.Panicln("failed to open cache directory", "error", err)
		}
		cacheStore = fileStore
	} else {
		log.Println("CACHE_DIR is not set, state will not survive restarts")
		cacheStore = cache.NewMemory()
	}

	mistralClient := mistral.NewClient(cfg.MistralAPIKey)
	if cfg.MistralModel != "" {
		mistralClient.Model = cfg.MistralModel
	}
	placesClient := places.NewClient(cfg.GooglePlacesAPIKey)

	stateStore := store.New(cacheStore, mistralClient, placesClient)
	websocket := websockets.NewWebSocketManager()
	stateStore.SetNotifier(websocket)

	cloudinary := storage.NewCloudinary(cfg)

	deps := Dependencies{
		Cache:      cacheStore,
		Mistral:    mistralClient,
		Places:     placesClient,
		Store:      stateStore,
		Cloudinary: cloudinary,
		WebSocket:  websocket,
	}
	return &deps
}
