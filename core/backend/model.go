package backend

import "time"

// User is a registered account. The stored bcrypt hash lives in the
// password column and is never part of a response payload.
type User struct {
	UserID       int64     `json:"userId"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	CreationDate time.Time `json:"creationDate"`
}

// Sensor is a field device owned by exactly one user
type Sensor struct {
	SensorID         int64     `json:"sensorId"`
	UserID           int64     `json:"userId"`
	SensorName       string    `json:"sensorName"`
	Location         string    `json:"location"`
	InstallationDate time.Time `json:"installationDate"`
}

// Reading is one sensor measurement. All measured fields are optional;
// a sensor reports whatever probes it carries.
type Reading struct {
	SensorDataID  int64     `json:"sensorDataId"`
	SensorID      int64     `json:"sensorId"`
	Ph            *float64  `json:"ph"`
	ShadingIndex  *float64  `json:"shadingIndex"`
	AirHumidity   *float64  `json:"airHumidity"`
	SoilHumidity  *float64  `json:"soilHumidity"`
	SoilNutrients *string   `json:"soilNutrients"`
	Temperature   *float64  `json:"temperature"`
	DateTime      time.Time `json:"dateTime"`
}

// Alert is an out-of-range condition raised for a sensor
type Alert struct {
	AlertID   int64     `json:"alertId"`
	SensorID  int64     `json:"sensorId"`
	Message   string    `json:"message"`
	Level     string    `json:"level"`
	Timestamp time.Time `json:"timestamp"`
}

// alert severity levels
const (
	LevelInfo     = "INFO"
	LevelWarning  = "WARNING"
	LevelCritical = "CRITICAL"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sensorRequest struct {
	SensorName string `json:"sensorName"`
	Location   string `json:"location"`
}

type readingRequest struct {
	Ph            *float64 `json:"ph"`
	ShadingIndex  *float64 `json:"shadingIndex"`
	AirHumidity   *float64 `json:"airHumidity"`
	SoilHumidity  *float64 `json:"soilHumidity"`
	SoilNutrients *string  `json:"soilNutrients"`
	Temperature   *float64 `json:"temperature"`
}

type alertRequest struct {
	Message string `json:"message"`
	Level   string `json:"level"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

type messageResponse struct {
	Message string `json:"message"`
}
