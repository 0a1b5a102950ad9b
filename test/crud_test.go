package test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/suite"

	"github.com/VithorDosSantos/reflora/core/backend"
	"github.com/VithorDosSantos/reflora/core/client"
)

type CrudTestSuite struct {
	IntegrationTestSuite
}

func TestCrudTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container tests in short mode")
	}
	suite.Run(t, &CrudTestSuite{})
}

func (s *CrudTestSuite) login(name, email, password string) client.Client {
	status, err := s.client.RawPost("/register", map[string]string{
		"name": name, "email": email, "password": password}, nil)
	s.Require().NoError(err)
	s.Require().Equal(http.StatusCreated, status)

	var token struct {
		Token string `json:"token"`
	}
	status, err = s.client.RawPost("/login", map[string]string{
		"email": email, "password": password}, &token)
	s.Require().NoError(err)
	s.Require().Equal(http.StatusOK, status)

	return s.client.WithToken(token.Token)
}

func (s *CrudTestSuite) TestSensorLifecycleOverHTTP() {
	c := s.login("Val", "val@example.com", "secret")

	var sensor backend.Sensor
	status, err := c.RawPost("/sensors", map[string]string{
		"sensorName": "greenhouse-1", "location": "north field"}, &sensor)
	s.Require().NoError(err)
	s.Require().Equal(http.StatusCreated, status)
	s.NotZero(sensor.SensorID)

	var reading backend.Reading
	status, err = c.RawPost(fmt.Sprintf("/sensors/%d/data", sensor.SensorID),
		map[string]interface{}{"ph": 6.4, "temperature": 22.5, "soilNutrients": "NPK 12-8-10"},
		&reading)
	s.Require().NoError(err)
	s.Require().Equal(http.StatusCreated, status)
	s.Require().NotNil(reading.Ph)
	s.Equal(6.4, *reading.Ph)

	var readings []backend.Reading
	status, err = c.RawGet(fmt.Sprintf("/sensors/%d/data", sensor.SensorID), &readings)
	s.Require().NoError(err)
	s.Require().Equal(http.StatusOK, status)
	s.Len(readings, 1)

	status, err = c.RawDelete(fmt.Sprintf("/sensors/%d", sensor.SensorID))
	s.Require().NoError(err)
	s.Require().Equal(http.StatusOK, status)

	var sensors []backend.Sensor
	status, err = c.RawGet("/sensors", &sensors)
	s.Require().NoError(err)
	s.Require().Equal(http.StatusOK, status)
	s.Empty(sensors)
}

// creating an alert publishes an event to the broker
func (s *CrudTestSuite) TestAlertEventReachesKafka() {
	c := s.login("Eve", "eve@example.com", "secret")

	var sensor backend.Sensor
	status, err := c.RawPost("/sensors", map[string]string{
		"sensorName": "greenhouse-2", "location": "south field"}, &sensor)
	s.Require().NoError(err)
	s.Require().Equal(http.StatusCreated, status)

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:   []string{s.kafkaAddr},
		Topic:     eventTopic,
		Partition: 0,
		MaxWait:   time.Second,
	})
	defer reader.Close()
	err = reader.SetOffset(kafka.LastOffset)
	s.Require().NoError(err)

	var alert backend.Alert
	status, err = c.RawPost(fmt.Sprintf("/sensors/%d/alert", sensor.SensorID),
		map[string]string{"message": "soil humidity below threshold", "level": "WARNING"},
		&alert)
	s.Require().NoError(err)
	s.Require().Equal(http.StatusCreated, status)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	for {
		message, err := reader.ReadMessage(ctx)
		s.Require().NoError(err, "no alert event arrived on the topic")
		if string(message.Key) != "alert/create" {
			continue
		}
		var published backend.Alert
		s.Require().NoError(json.Unmarshal(message.Value, &published))
		s.Equal(alert.AlertID, published.AlertID)
		s.Equal(alert.Message, published.Message)
		break
	}
}
