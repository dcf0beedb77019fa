// Package homesdk is the Go client for the hearth service.
//
// A Client performs unauthenticated calls (registration, login, invitation
// acceptance, health checks). Login returns a Session, which carries the
// access token, renews it shortly before it expires and exposes the
// authenticated calls together with the camera relay.
//
//	client := homesdk.NewClient("http://localhost:8080")
//	sess, err := client.Login(ctx, "ada@example.com", "correct horse")
//	if err != nil {
//		return err
//	}
//	cam := homesdk.StreamKey{BuildingID: 1, RoomID: 2, CameraID: 3}
//	err = sess.ConsumeWithRetry(ctx, cam, func(frame []byte) error {
//		return os.WriteFile("latest.jpg", frame, 0o644)
//	})
//
// The wire types in this package are shared with the server's HTTP
// handlers.
package homesdk
