package utils

import (
	"context"
	"log"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"barberbook/config"
)

var (
	// FirestoreClient is the slot store handle (firestore backend only).
	FirestoreClient *firestore.Client
	// FCMClient delivers push notifications to the shop owner's device.
	FCMClient *messaging.Client
)

// FirebaseInit initializes the Firebase app plus the Firestore and
// Messaging clients. Called at startup when the firestore backend or an
// admin FCM token is configured; any failure is fatal.
func FirebaseInit() {
	ctx := context.Background()
	opt := option.WithCredentialsFile(config.AppConfig.FirebaseCredentialsFile)

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		log.Fatalf("firebase: error initializing app: %v", err)
	}

	fs, err := app.Firestore(ctx)
	if err != nil {
		log.Fatalf("firebase: error getting Firestore client: %v", err)
	}
	FirestoreClient = fs

	fcm, err := app.Messaging(ctx)
	if err != nil {
		log.Fatalf("firebase: error getting Messaging client: %v", err)
	}
	FCMClient = fcm
}
