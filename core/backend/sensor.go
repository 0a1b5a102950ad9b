package backend

import (
	"fmt"
	"net/http"

	"github.com/VithorDosSantos/reflora/core"
	"github.com/VithorDosSantos/reflora/core/logger"
	"github.com/VithorDosSantos/reflora/core/schema"
)

// createSensor registers a new sensor owned by the authenticated user
func (b *Backend) createSensor(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var request sensorRequest
	if err := b.readBody(r, schema.SensorID, &request); err != nil {
		writeError(w, r, err)
		return
	}

	var sensor Sensor
	query := fmt.Sprintf(`INSERT INTO %s.sensor (user_id, sensor_name, location)
VALUES ($1, $2, $3) RETURNING sensor_id, user_id, sensor_name, location, installation_date;`, b.db.Schema)
	err = b.db.QueryRowContext(r.Context(), query, id.UserID, request.SensorName, request.Location).
		Scan(&sensor.SensorID, &sensor.UserID, &sensor.SensorName, &sensor.Location, &sensor.InstallationDate)
	if err != nil {
		writeError(w, r, core.ServerError(err))
		return
	}

	logger.FromContext(r.Context()).Infof("created sensor %d", sensor.SensorID)
	writeJSON(w, http.StatusCreated, sensor)
}

// listSensors returns all sensors owned by the authenticated user. An
// empty result is a valid outcome and yields an empty list, not an error.
func (b *Backend) listSensors(w http.ResponseWriter, r *http.Request) {
	id, err := identity(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	query := fmt.Sprintf(`SELECT sensor_id, user_id, sensor_name, location, installation_date
FROM %s.sensor WHERE user_id = $1 ORDER BY sensor_id;`, b.db.Schema)
	rows, err := b.db.QueryContext(r.Context(), query, id.UserID)
	if err != nil {
		writeError(w, r, core.ServerError(err))
		return
	}
	defer rows.Close()

	sensors := []Sensor{}
	for rows.Next() {
		var s Sensor
		if err := rows.Scan(&s.SensorID, &s.UserID, &s.SensorName, &s.Location, &s.InstallationDate); err != nil {
			writeError(w, r, core.ServerError(err))
			return
		}
		sensors = append(sensors, s)
	}
	if err := rows.Err(); err != nil {
		writeError(w, r, core.ServerError(err))
		return
	}

	writeJSON(w, http.StatusOK, sensors)
}

// getSensor returns one sensor owned by the authenticated user
func (b *Backend) getSensor(w http.ResponseWriter, r *http.Request) {
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

	sensor, err := b.ownedSensor(r.Context(), id.UserID, sensorID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, sensor)
}

// updateSensor replaces name and location of an owned sensor
func (b *Backend) updateSensor(w http.ResponseWriter, r *http.Request) {
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

	var request sensorRequest
	if err := b.readBody(r, schema.SensorID, &request); err != nil {
		writeError(w, r, err)
		return
	}

	if _, err := b.ownedSensor(r.Context(), id.UserID, sensorID); err != nil {
		writeError(w, r, err)
		return
	}

	var sensor Sensor
	query := fmt.Sprintf(`UPDATE %s.sensor SET sensor_name = $1, location = $2
WHERE sensor_id = $3 RETURNING sensor_id, user_id, sensor_name, location, installation_date;`, b.db.Schema)
	err = b.db.QueryRowContext(r.Context(), query, request.SensorName, request.Location, sensorID).
		Scan(&sensor.SensorID, &sensor.UserID, &sensor.SensorName, &sensor.Location, &sensor.InstallationDate)
	if err != nil {
		writeError(w, r, core.ServerError(err))
		return
	}

	writeJSON(w, http.StatusOK, sensor)
}

// deleteSensor removes an owned sensor. The store cascades the delete to
// the sensor's readings and alerts.
func (b *Backend) deleteSensor(w http.ResponseWriter, r *http.Request) {
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

	sensor, err := b.ownedSensor(r.Context(), id.UserID, sensorID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	query := fmt.Sprintf(`DELETE FROM %s.sensor WHERE sensor_id = $1;`, b.db.Schema)
	result, err := b.db.ExecContext(r.Context(), query, sensorID)
	if err != nil {
		writeError(w, r, core.ServerError(err))
		return
	}
	if count, err := result.RowsAffected(); err == nil && count == 0 {
		writeError(w, r, core.NotFoundError("sensor not found"))
		return
	}

	logger.FromContext(r.Context()).Infof("deleted sensor %d", sensorID)
	b.notify(r.Context(), "sensor", core.OperationDelete, sensor)
	writeJSON(w, http.StatusOK, messageResponse{Message: "sensor deleted"})
}
