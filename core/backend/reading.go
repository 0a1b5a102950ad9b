package backend

import (
	"fmt"
	"net/http"

	"github.com/VithorDosSantos/reflora/core"
	"github.com/VithorDosSantos/reflora/core/csql"
	"github.com/VithorDosSantos/reflora/core/schema"
)

const readingColumns = "sensor_data_id, sensor_id, ph, shading_index, air_humidity, soil_humidity, soil_nutrients, temperature, date_time"

func scanReading(row interface{ Scan(...interface{}) error }) (Reading, error) {
	var d Reading
	err := row.Scan(&d.SensorDataID, &d.SensorID, &d.Ph, &d.ShadingIndex,
		&d.AirHumidity, &d.SoilHumidity, &d.SoilNutrients, &d.Temperature, &d.DateTime)
	return d, err
}

// createReading stores a new measurement for an owned sensor
func (b *Backend) createReading(w http.ResponseWriter, r *http.Request) {
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

	var request readingRequest
	if err := b.readBody(r, schema.ReadingID, &request); err != nil {
		writeError(w, r, err)
		return
	}

	if _, err := b.ownedSensor(r.Context(), id.UserID, sensorID); err != nil {
		writeError(w, r, err)
		return
	}

	query := fmt.Sprintf(`INSERT INTO %s.sensor_data (sensor_id, ph, shading_index, air_humidity, soil_humidity, soil_nutrients, temperature)
VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING `+readingColumns+`;`, b.db.Schema)
	reading, err := scanReading(b.db.QueryRowContext(r.Context(), query, sensorID,
		request.Ph, request.ShadingIndex, request.AirHumidity,
		request.SoilHumidity, request.SoilNutrients, request.Temperature))
	if err != nil {
		writeError(w, r, core.ServerError(err))
		return
	}

	writeJSON(w, http.StatusCreated, reading)
}

// listReadings returns all measurements of an owned sensor
func (b *Backend) listReadings(w http.ResponseWriter, r *http.Request) {
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

	query := fmt.Sprintf(`SELECT `+readingColumns+` FROM %s.sensor_data
WHERE sensor_id = $1 ORDER BY sensor_data_id;`, b.db.Schema)
	rows, err := b.db.QueryContext(r.Context(), query, sensorID)
	if err != nil {
		writeError(w, r, core.ServerError(err))
		return
	}
	defer rows.Close()

	readings := []Reading{}
	for rows.Next() {
		reading, err := scanReading(rows)
		if err != nil {
			writeError(w, r, core.ServerError(err))
			return
		}
		readings = append(readings, reading)
	}
	if err := rows.Err(); err != nil {
		writeError(w, r, core.ServerError(err))
		return
	}

	writeJSON(w, http.StatusOK, readings)
}

// getReading returns one measurement. The query conjoins the reading id
// with the sensor id from the path, so a reading of another sensor is not
// reachable even when both sensors belong to the requester.
func (b *Backend) getReading(w http.ResponseWriter, r *http.Request) {
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
	dataID, err := pathID(r, "data_id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if _, err := b.ownedSensor(r.Context(), id.UserID, sensorID); err != nil {
		writeError(w, r, err)
		return
	}

	query := fmt.Sprintf(`SELECT `+readingColumns+` FROM %s.sensor_data
WHERE sensor_data_id = $1 AND sensor_id = $2;`, b.db.Schema)
	reading, err := scanReading(b.db.QueryRowContext(r.Context(), query, dataID, sensorID))
	if err == csql.ErrNoRows {
		writeError(w, r, core.NotFoundError("no data found for this sensor"))
		return
	}
	if err != nil {
		writeError(w, r, core.ServerError(err))
		return
	}

	writeJSON(w, http.StatusOK, reading)
}

// updateReading replaces the measured fields of one reading
func (b *Backend) updateReading(w http.ResponseWriter, r *http.Request) {
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
	dataID, err := pathID(r, "data_id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var request readingRequest
	if err := b.readBody(r, schema.ReadingID, &request); err != nil {
		writeError(w, r, err)
		return
	}

	if _, err := b.ownedSensor(r.Context(), id.UserID, sensorID); err != nil {
		writeError(w, r, err)
		return
	}

	query := fmt.Sprintf(`UPDATE %s.sensor_data
SET ph = $1, shading_index = $2, air_humidity = $3, soil_humidity = $4, soil_nutrients = $5, temperature = $6
WHERE sensor_data_id = $7 AND sensor_id = $8 RETURNING `+readingColumns+`;`, b.db.Schema)
	reading, err := scanReading(b.db.QueryRowContext(r.Context(), query,
		request.Ph, request.ShadingIndex, request.AirHumidity,
		request.SoilHumidity, request.SoilNutrients, request.Temperature,
		dataID, sensorID))
	if err == csql.ErrNoRows {
		writeError(w, r, core.NotFoundError("no data found for this sensor"))
		return
	}
	if err != nil {
		writeError(w, r, core.ServerError(err))
		return
	}

	writeJSON(w, http.StatusOK, reading)
}

// deleteReading removes one measurement
func (b *Backend) deleteReading(w http.ResponseWriter, r *http.Request) {
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
	dataID, err := pathID(r, "data_id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if _, err := b.ownedSensor(r.Context(), id.UserID, sensorID); err != nil {
		writeError(w, r, err)
		return
	}

	query := fmt.Sprintf(`DELETE FROM %s.sensor_data
WHERE sensor_data_id = $1 AND sensor_id = $2;`, b.db.Schema)
	result, err := b.db.ExecContext(r.Context(), query, dataID, sensorID)
	if err != nil {
		writeError(w, r, core.ServerError(err))
		return
	}
	count, err := result.RowsAffected()
	if err != nil {
		writeError(w, r, core.ServerError(err))
		return
	}
	if count == 0 {
		writeError(w, r, core.NotFoundError("no data found for this sensor"))
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "sensor data deleted"})
}
