package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	models "github.com/greenroots/social-server/models"
)

const dateLayout = "2006-01-02"

// ---------------- CREATE ----------------
func CreateTree(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := bindDocument(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be a JSON object"})
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), shortTimeout)
		defer cancel()

		ack, err := env.Trees.Insert(ctx, doc)
		if err != nil {
			storeFailed(c, env.Log, err, "could not create tree")
			return
		}
		c.JSON(http.StatusOK, ack)
	}
}

// ---------------- LIST ----------------
func ListTrees(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := models.TreeFilter{
			FromDate: env.now().UTC().Format(dateLayout),
			Type:     c.Query("type"),
			Search:   c.Query("search"),
		}

		ctx, cancel := context.WithTimeout(context.Background(), listTimeout)
		defer cancel()

		trees, err := env.Trees.ListUpcoming(ctx, filter)
		if err != nil {
			env.Log.Error("error fetching trees",
				zap.String("type", filter.Type),
				zap.String("search", filter.Search),
				zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch trees"})
			return
		}
		c.JSON(http.StatusOK, trees)
	}
}

// ---------------- GET ----------------
func GetTree(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), shortTimeout)
		defer cancel()

		tree, err := env.Trees.FindByID(ctx, c.Param("id"))
		if err != nil {
			lookupFailed(c, env.Log, err, "tree not found")
			return
		}
		c.JSON(http.StatusOK, tree)
	}
}

// ---------------- DELETE ----------------
func DeleteTree(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), shortTimeout)
		defer cancel()

		ack, err := env.Trees.DeleteByID(ctx, c.Param("id"))
		if err != nil {
			storeFailed(c, env.Log, err, "failed to delete tree")
			return
		}
		c.JSON(http.StatusOK, ack)
	}
}
