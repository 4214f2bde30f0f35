package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const livenessMessage = "Social development server is running!!"

func Root() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, livenessMessage)
	}
}

// Health reports whether the database answers a ping.
func Health(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := env.DB.Ping(ctx); err != nil {
			env.Log.Error("health-check: mongo ping failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "error",
				"database": "disconnected",
				"error":    err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "connected"})
	}
}

// ---------------- UPLOAD ----------------
func UploadThumbnail(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		if env.Uploader == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image uploads are not configured"})
			return
		}

		fileHeader, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to open file"})
			return
		}
		defer file.Close()

		url, err := env.Uploader.UploadThumbnail(c.Request.Context(), file, fileHeader.Filename)
		if err != nil {
			env.Log.Error("thumbnail upload failed", zap.String("file", fileHeader.Filename), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "image upload failed",
				"details": err.Error(),
				"file":    fileHeader.Filename,
			})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"url": url})
	}
}
