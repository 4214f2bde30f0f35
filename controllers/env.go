package controllers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	models "github.com/greenroots/social-server/models"
	store "github.com/greenroots/social-server/store"
)

const (
	shortTimeout = 5 * time.Second
	listTimeout  = 10 * time.Second
)

type TreeRepository interface {
	Insert(ctx context.Context, doc bson.M) (models.InsertAck, error)
	ListUpcoming(ctx context.Context, f models.TreeFilter) ([]bson.M, error)
	FindByID(ctx context.Context, id string) (bson.M, error)
	DeleteByID(ctx context.Context, id string) (models.DeleteAck, error)
}

type EventRepository interface {
	Insert(ctx context.Context, doc bson.M) (models.InsertAck, error)
	List(ctx context.Context) ([]bson.M, error)
	FindByID(ctx context.Context, id string) (bson.M, error)
	UpdateByID(ctx context.Context, id string, body map[string]interface{}) (models.UpdateAck, error)
}

type JoinRepository interface {
	Insert(ctx context.Context, j models.JoinedEvent) (models.InsertAck, error)
	List(ctx context.Context) ([]models.JoinedEvent, error)
	FindByID(ctx context.Context, id string) (models.JoinedEvent, error)
}

type ThumbnailUploader interface {
	UploadThumbnail(ctx context.Context, file io.Reader, filename string) (string, error)
}

type JoinNotifier interface {
	JoinConfirmed(ctx context.Context, j models.JoinedEvent) error
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// Env carries the process-scoped dependencies every handler needs.
// Uploader and Notifier are optional.
type Env struct {
	Trees    TreeRepository
	Events   EventRepository
	Joins    JoinRepository
	DB       Pinger
	Uploader ThumbnailUploader
	Notifier JoinNotifier
	Log      *zap.Logger
	Now      func() time.Time

	notifications sync.WaitGroup
}

// WaitForNotifications blocks until every queued join confirmation has finished
// or ctx is done.
func (e *Env) WaitForNotifications(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		e.notifications.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (e *Env) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// bindDocument decodes a free-form JSON object body. An empty body is an empty
// document.
func bindDocument(c *gin.Context) (bson.M, error) {
	doc := bson.M{}
	if err := c.ShouldBindJSON(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if doc == nil {
		doc = bson.M{}
	}
	return doc, nil
}

// lookupFailed writes the response for a failed by-id lookup or update.
func lookupFailed(c *gin.Context, log *zap.Logger, err error, notFound string) {
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": notFound})
		return
	}
	log.Error("lookup failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error", "details": err.Error()})
}

// storeFailed is the generic 500 for routes that carry no error detail.
func storeFailed(c *gin.Context, log *zap.Logger, err error, msg string) {
	log.Error(msg, zap.String("path", c.Request.URL.Path), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}
