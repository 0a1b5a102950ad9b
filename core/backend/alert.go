package backend

import (
	"fmt"
	"net/http"

	"github.com/VithorDosSantos/reflora/core"
	"github.com/VithorDosSantos/reflora/core/logger"
	"github.com/VithorDosSantos/reflora/core/schema"
)

const alertColumns = "alert_id, sensor_id, message, level, timestamp"

// createAlert raises a new alert for an owned sensor
func (b *Backend) createAlert(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	sensorID, err := pathID(r, "sensor_id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var request alertRequest
	if err := b.readBody(r, schema.AlertID, &request); err != nil {
		writeError(w, r, err)
		return
	}

	if _, err := b.ownedSensor(r.Context(), id.UserID, sensorID); err != nil {
		writeError(w, r, err)
		return
	}

	var alert Alert
	query := fmt.Sprintf(`INSERT INTO %s.alert (sensor_id, message, level)
VALUES ($1, $2, $3) RETURNING `+alertColumns+`;`, b.db.Schema)
	err = b.db.QueryRowContext(r.Context(), query, sensorID, request.Message, request.Level).
		Scan(&alert.AlertID, &alert.SensorID, &alert.Message, &alert.Level, &alert.Timestamp)
	if err != nil {
		writeError(w, r, core.ServerError(err))
		return
	}

	logger.FromContext(r.Context()).Infof("raised %s alert %d for sensor %d", alert.Level, alert.AlertID, sensorID)
	b.notify(r.Context(), "alert", core.OperationCreate, alert)
	writeJSON(w, http.StatusCreated, alert)
}

// listAlerts returns all alerts of an owned sensor
func (b *Backend) listAlerts(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	sensorID, err := pathID(r, "sensor_id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if _, err := b.ownedSensor(r.Context(), id.UserID, sensorID); err != nil {
		writeError(w, r, err)
		return
	}

	query := fmt.Sprintf(`SELECT `+alertColumns+` FROM %s.alert
WHERE sensor_id = $1 ORDER BY alert_id;`, b.db.Schema)
	rows, err := b.db.QueryContext(r.Context(), query, sensorID)
	if err != nil {
		writeError(w, r, core.ServerError(err))
		return
	}
	defer rows.Close()

	alerts := []Alert{}
	for rows.Next() {
		var a Alert
		if err := rows.Scan(&a.AlertID, &a.SensorID, &a.Message, &a.Level, &a.Timestamp); err != nil {
			writeError(w, r, core.ServerError(err))
			return
		}
		alerts = append(alerts, a)
	}
	if err := rows.Err(); err != nil {
		writeError(w, r, core.ServerError(err))
		return
	}

	writeJSON(w, http.StatusOK, alerts)
}

// getAlert returns one alert, addressed without its parent sensor
func (b *Backend) getAlert(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	alertID, err := pathID(r, "alert_id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	alert, err := b.ownedAlert(r.Context(), id.UserID, alertID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, alert)
}

// updateAlert replaces message and level of one alert
func (b *Backend) updateAlert(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	alertID, err := pathID(r, "alert_id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var request alertRequest
	if err := b.readBody(r, schema.AlertID, &request); err != nil {
		writeError(w, r, err)
		return
	}

	if _, err := b.ownedAlert(r.Context(), id.UserID, alertID); err != nil {
		writeError(w, r, err)
		return
	}

	var alert Alert
	query := fmt.Sprintf(`UPDATE %s.alert SET message = $1, level = $2
WHERE alert_id = $3 RETURNING `+alertColumns+`;`, b.db.Schema)
	err = b.db.QueryRowContext(r.Context(), query, request.Message, request.Level, alertID).
		Scan(&alert.AlertID, &alert.SensorID, &alert.Message, &alert.Level, &alert.Timestamp)
	if err != nil {
		writeError(w, r, core.ServerError(err))
		return
	}

	b.notify(r.Context(), "alert", core.OperationUpdate, alert)
	writeJSON(w, http.StatusOK, alert)
}

// deleteAlert removes one alert
func (b *Backend) deleteAlert(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	alertID, err := pathID(r, "alert_id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if _, err := b.ownedAlert(r.Context(), id.UserID, alertID); err != nil {
		writeError(w, r, err)
		return
	}

	query := fmt.Sprintf(`DELETE FROM %s.alert WHERE alert_id = $1;`, b.db.Schema)
	result, err := b.db.ExecContext(r.Context(), query, alertID)
	if err != nil {
		writeError(w, r, core.ServerError(err))
		return
	}
	if count, err := result.RowsAffected(); err == nil && count == 0 {
		writeError(w, r, core.NotFoundError("alert not found"))
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "alert deleted"})
}
