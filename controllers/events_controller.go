package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ---------------- CREATE ----------------
func CreateEvent(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := bindDocument(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be a JSON object"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), shortTimeout)
		defer cancel()

		ack, err := env.Events.Insert(ctx, doc)
		if err != nil {
			storeFailed(c, env.Log, err, "could not create event")
			return
		}
		c.JSON(http.StatusOK, ack)
	}
}

// ---------------- LIST ----------------
func ListEvents(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), listTimeout)
		defer cancel()

		events, err := env.Events.List(ctx)
		if err != nil {
			storeFailed(c, env.Log, err, "could not fetch events")
			return
		}
		c.JSON(http.StatusOK, events)
	}
}

// ---------------- GET ----------------
func GetEvent(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), shortTimeout)
		defer cancel()

		event, err := env.Events.FindByID(ctx, c.Param("id"))
		if err != nil {
			lookupFailed(c, env.Log, err, "event not found")
			return
		}
		c.JSON(http.StatusOK, event)
	}
}

// ---------------- UPDATE ----------------
// UpdateEvent overwrites all six event fields; any the body leaves out are cleared.
func UpdateEvent(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := bindDocument(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be a JSON object"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), shortTimeout)
		defer cancel()

		ack, err := env.Events.UpdateByID(ctx, c.Param("id"), body)
		if err != nil {
			lookupFailed(c, env.Log, err, "event not found")
			return
		}
		c.JSON(http.StatusOK, ack)
	}
}
