package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"

	"manzafir/middleware"
	"manzafir/store"
)

type pushSubscribeRequest struct {
	Endpoint string `json:"endpoint" binding:"required"`
	Keys     struct {
		P256dh string `json:"p256dh" binding:"required"`
		Auth   string `json:"auth" binding:"required"`
	} `json:"keys" binding:"required"`
}

func (a *API) GetVAPIDPublicKey(c *gin.Context) {
	if a.VAPIDPublicKey == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Push notifications not configured"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"publicKey": a.VAPIDPublicKey})
}

// SubscribePush stores the caller's browser push subscription, replacing any
// previous one.
func (a *API) SubscribePush(c *gin.Context) {
	var req pushSubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetString(middleware.ContextUserID)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	sub := store.PushSubscription{
		UserID: userID,
		Sub: webpush.Subscription{
			Endpoint: req.Endpoint,
			Keys: webpush.Keys{
				P256dh: req.Keys.P256dh,
				Auth:   req.Keys.Auth,
			},
		},
	}

	if err := a.PushSubs.Upsert(ctx, sub); err != nil {
		log.Printf("[push] subscription save failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save subscription"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Push subscription saved successfully"})
}

// SendMatchPush notifies a user that they have a new mutual match.
func (a *API) SendMatchPush(userID, matchedUserName string) {
	a.sendPushNotification(userID, "New travel match!", "You matched with "+matchedUserName)
}

// sendPushNotification delivers asynchronously; failures are logged, never
// surfaced. An expired subscription (410) is removed.
func (a *API) sendPushNotification(userID, title, body string) {
	if a.VAPIDPrivateKey == "" {
		return
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[push] panic in push notification: %v", r)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		sub, err := a.PushSubs.Get(ctx, userID)
		if err != nil {
			log.Printf("[push] subscription lookup failed for %s: %v", userID, err)
			return
		}
		if sub == nil {
			return
		}

		payload, err := json.Marshal(map[string]interface{}{
			"title": title,
			"body":  body,
			"data": map[string]interface{}{
				"url":       "/matches",
				"timestamp": time.Now().Unix(),
			},
		})
		if err != nil {
			return
		}

		resp, err := webpush.SendNotification(payload, &sub.Sub, &webpush.Options{
			Subscriber:      a.PushSubscriber,
			VAPIDPublicKey:  a.VAPIDPublicKey,
			VAPIDPrivateKey: a.VAPIDPrivateKey,
			TTL:             30,
		})
		if err != nil {
			log.Printf("[push] send failed for %s: %v", userID, err)
			if resp != nil && resp.StatusCode == http.StatusGone {
				if delErr := a.PushSubs.Delete(ctx, userID); delErr != nil {
					log.Printf("[push] expired subscription cleanup failed: %v", delErr)
				}
			}
			return
		}
		resp.Body.Close()
	}()
}
