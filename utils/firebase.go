package utils

import (
	"context"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// FCMClient delivers escalation pushes to the on-call staff device.
var FCMClient *messaging.Client

// FirebaseInit sets up the Firebase messaging client. The credentials
// file path comes from FIREBASE_CREDENTIALS_FILE. Escalation push is a
// hard requirement for the human-handoff menu option, so init failure
// is fatal.
func FirebaseInit() {
	ctx := context.Background()
	logger := GetLogger()

	viper.SetDefault("FIREBASE_CREDENTIALS_FILE", "firebase-service-account.json")
	credsFile := viper.GetString("FIREBASE_CREDENTIALS_FILE")

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credsFile))
	if err != nil {
		logger.Fatal("firebase: app init failed", zap.Error(err))
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		logger.Fatal("firebase: messaging client init failed", zap.Error(err))
	}
	FCMClient = client
}
