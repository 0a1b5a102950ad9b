package backend

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/VithorDosSantos/reflora/core"
	"github.com/VithorDosSantos/reflora/core/access"
	"github.com/VithorDosSantos/reflora/core/csql"
)

// identity returns the acting user for the request. The bearer middleware
// guarantees an identity on every protected route; its absence means a
// route was wired outside the middleware, which is a programming error
// worth a 401 rather than a panic.
func identity(r *http.Request) (access.Identity, error) {
	id, ok := access.IdentityFromContext(r.Context())
	if !ok {
		return access.Identity{}, core.UnauthenticatedError("access denied")
	}
	return id, nil
}

// pathID extracts a numeric path variable. Routes constrain the variables
// to digits, so a parse failure can only mean a route misconfiguration.
func pathID(r *http.Request, name string) (int64, error) {
	value, ok := mux.Vars(r)[name]
	if !ok {
		return 0, core.ServerError(fmt.Errorf("missing path variable %s", name))
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, core.NotFoundError("resource not found")
	}
	return id, nil
}

// ownedSensor resolves the sensor and verifies that it belongs to the
// acting user. A missing sensor and a sensor owned by somebody else both
// come back as the same not-found error, so sensor ids cannot be probed
// across users. Every operation on a sensor or on one of its readings or
// alerts goes through here first.
func (b *Backend) ownedSensor(ctx context.Context, userID, sensorID int64) (Sensor, error) {
	var s Sensor
	query := fmt.Sprintf(`SELECT sensor_id, user_id, sensor_name, location, installation_date
FROM %s.sensor WHERE sensor_id = $1;`, b.db.Schema)
	err := b.db.QueryRowContext(ctx, query, sensorID).
		Scan(&s.SensorID, &s.UserID, &s.SensorName, &s.Location, &s.InstallationDate)
	if err == csql.ErrNoRows {
		return Sensor{}, core.NotFoundError("sensor not found")
	}
	if err != nil {
		return Sensor{}, core.ServerError(err)
	}
	if s.UserID != userID {
		return Sensor{}, core.NotFoundError("sensor not found")
	}
	return s, nil
}

// ownedAlert resolves an alert addressed without its parent sensor in the
// path. The owner is established through the parent sensor; as with
// ownedSensor, absence and foreign ownership are indistinguishable.
func (b *Backend) ownedAlert(ctx context.Context, userID, alertID int64) (Alert, error) {
	var a Alert
	var ownerID int64
	query := fmt.Sprintf(`SELECT a.alert_id, a.sensor_id, a.message, a.level, a.timestamp, s.user_id
FROM %[1]s.alert a JOIN %[1]s.sensor s ON a.sensor_id = s.sensor_id
WHERE a.alert_id = $1;`, b.db.Schema)
	err := b.db.QueryRowContext(ctx, query, alertID).
		Scan(&a.AlertID, &a.SensorID, &a.Message, &a.Level, &a.Timestamp, &ownerID)
	if err == csql.ErrNoRows {
		return Alert{}, core.NotFoundError("alert not found")
	}
	if err != nil {
		return Alert{}, core.ServerError(err)
	}
	if ownerID != userID {
		return Alert{}, core.NotFoundError("alert not found")
	}
	return a, nil
}
