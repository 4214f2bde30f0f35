package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	models "github.com/greenroots/social-server/models"
	store "github.com/greenroots/social-server/store"
)

const notifyTimeout = 30 * time.Second

// ---------------- CREATE ----------------
func JoinEvent(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.JoinRequest
		if err := c.ShouldBindJSON(&input); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "userId and eventId are required"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		eventID, err := store.ParseID(models.Text(input.EventID))
		if err != nil {
			env.Log.Error("join-event: bad event id", zap.Any("eventId", input.EventID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error", "details": err.Error()})
			return
		}

		join := models.JoinedEvent{
			UserID:     input.UserID,
			UserName:   input.UserName,
			UserEmail:  input.UserEmail,
			EventID:    eventID,
			EventTitle: input.EventTitle,
			EventDate:  input.EventDate,
			JoinedAt:   env.now(),
		}

		ctx, cancel := context.WithTimeout(context.Background(), shortTimeout)
		defer cancel()

		ack, err := env.Joins.Insert(ctx, join)
		if err != nil {
			storeFailed(c, env.Log, err, "could not join event")
			return
		}

		if env.Notifier != nil && models.Text(join.UserEmail) != "" {
			env.notifications.Add(1)
			go notifyJoin(env, join)
		}

		c.JSON(http.StatusOK, ack)
	}
}

func notifyJoin(env *Env, join models.JoinedEvent) {
	defer env.notifications.Done()

	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	if err := env.Notifier.JoinConfirmed(ctx, join); err != nil {
		env.Log.Warn("join confirmation email failed",
			zap.Any("userId", join.UserID),
			zap.String("eventId", join.EventID.Hex()),
			zap.Error(err))
	}
}

// ---------------- LIST ----------------
func ListJoins(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), listTimeout)
		defer cancel()

		joins, err := env.Joins.List(ctx)
		if err != nil {
			storeFailed(c, env.Log, err, "could not fetch joined events")
			return
		}
		c.JSON(http.StatusOK, joins)
	}
}

// ---------------- GET ----------------
func GetJoin(env *Env) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(context.Background(), shortTimeout)
		defer cancel()

		join, err := env.Joins.FindByID(ctx, c.Param("id"))
		if err != nil {
			lookupFailed(c, env.Log, err, "joined event not found")
			return
		}
		c.JSON(http.StatusOK, join)
	}
}
