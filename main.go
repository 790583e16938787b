package main

import (
	"context"
	"fmt"
	"hash/fnv"
	"net/http"
	"time"

	mongoutil "CollabSphere/data/database/mgo/mongoutil"
	"CollabSphere/global/config"
	"CollabSphere/logger"
	mwsecurity "CollabSphere/middleware/security"
	"CollabSphere/module/document"
	docservice "CollabSphere/module/document/service"
	"CollabSphere/module/document/store"
	"CollabSphere/service/collab"
	"CollabSphere/service/collab/handlers"
	"CollabSphere/service/mgo"
	"CollabSphere/service/storage"
	"CollabSphere/tools/ids"

	"github.com/gin-gonic/gin"
)

const mongoReadyWait = 15 * time.Second

func main() {
	config.LoadEnv()
	ids.SetNodeID(nodeNum(config.Global.NodeId))

	if err := storage.InitRedis(storage.Config{
		Addr:     config.Global.Redis.Addr,
		Password: config.Global.Redis.Password,
		DB:       config.Global.Redis.DB,
	}); err != nil {
		// presence is best-effort, run without it
		logger.Warnf("[Boot] redis unavailable, presence disabled: %v", err)
	}

	ctx := context.Background()
	mgo.StartAsync(ctx, &mongoutil.Config{
		Uri:         config.Global.Mongo.Uri,
		Database:    config.Global.Mongo.Database,
		Username:    config.Global.Mongo.Username,
		Password:    config.Global.Mongo.Password,
		MaxPoolSize: config.Global.Mongo.MaxPoolSize,
		MaxRetry:    config.Global.Mongo.MaxRetry,
	})

	docs, versionDB := buildStores(ctx)
	versions := store.NewVersionStore(versionDB, docs)

	reg := collab.NewRegistry(config.Global.CursorColors)
	server := collab.NewServer(
		config.Global.NodeId,
		reg,
		versions,
		docs,
		int64(config.Global.KeepVersions),
		config.Global.PresenceTTL,
	)
	handlers.RegisterAll(server)

	svc := docservice.NewService(docs, versions, int64(config.Global.VersionsLimit))

	r := gin.Default()
	r.GET("/ws", server.HandleWS)
	r.GET("/healthz", healthz)

	api := r.Group("/api", mwsecurity.Middleware(mwsecurity.DefaultOptions()))
	document.NewHandler(svc).RegisterRoutes(api.Group("/documents"))
	api.GET("/presence/:userId", presence)

	addr := fmt.Sprintf(":%d", config.Global.Port)
	logger.Infof("[Boot] node=%s listening on %s", config.Global.NodeId, addr)
	if err := r.Run(addr); err != nil {
		logger.Errorf("[Boot] server exited: %v", err)
	}
}

// buildStores waits briefly for mongo; if it does not come up the process
// still serves realtime sessions on in-memory stores so local development
// does not require a database.
func buildStores(ctx context.Context) (store.DocumentDB, store.VersionDB) {
	waitCtx, cancel := context.WithTimeout(ctx, mongoReadyWait)
	defer cancel()
	if err := mgo.WaitReady(waitCtx); err != nil {
		logger.Warnf("[Boot] mongo not ready (%v), falling back to in-memory stores", err)
		return store.NewMemDocumentDB(), store.NewMemVersionDB()
	}
	db := mgo.GetDB()
	logger.Infof("[Boot] mongo connected db=%s", config.Global.Mongo.Database)
	return store.NewMongoDocumentDB(db), store.NewMongoVersionDB(db)
}

// healthz reports process liveness plus backing-store reachability.
func healthz(c *gin.Context) {
	_, mongoReady := mgo.TryGetDB()
	resp := gin.H{"status": "ok", "mongo": mongoReady, "redis": storage.Enabled()}
	if !mongoReady {
		if err := mgo.Err(); err != nil {
			resp["mongoError"] = err.Error()
		}
	}
	c.JSON(http.StatusOK, resp)
}

// presence answers "is this user editing right now, and what". Best-effort:
// without redis the recorder is disabled and the endpoint says so.
func presence(c *gin.Context) {
	if !storage.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "message": "Presence recorder disabled"})
		return
	}
	documentID, online, err := storage.PresenceLookup(c.Param("userId"))
	if err != nil {
		logger.Errorf("[Presence] lookup user=%s: %v", c.Param("userId"), err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "online": online, "documentId": documentID})
}

func nodeNum(nodeID string) int64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(nodeID))
	return int64(h.Sum32() % 1024)
}
