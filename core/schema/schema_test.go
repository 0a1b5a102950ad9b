package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/VithorDosSantos/reflora/core"
)

func TestValidatorKnowsAllSchemas(t *testing.T) {
	v := MustNewValidator()
	for _, id := range []string{RegisterID, LoginID, SensorID, ReadingID, AlertID} {
		assert.True(t, v.HasSchema(id), "missing schema %s", id)
	}
	assert.False(t, v.HasSchema("https://reflora.app/schemas/unknown.json"))
}

func TestValidateRegister(t *testing.T) {
	v := MustNewValidator()

	assert.NoError(t, v.Validate([]byte(`{"name":"A","email":"a@x.com","password":"p"}`), RegisterID))

	err := v.Validate([]byte(`{"email":"a@x.com","password":"p"}`), RegisterID)
	assert.Error(t, err)
	assert.Equal(t, core.KindValidation, core.KindOf(err))

	err = v.Validate([]byte(`{"name":"","email":"a@x.com","password":"p"}`), RegisterID)
	assert.Error(t, err)
}

func TestValidateSensor(t *testing.T) {
	v := MustNewValidator()

	assert.NoError(t, v.Validate([]byte(`{"sensorName":"S1","location":"Field1"}`), SensorID))
	assert.Error(t, v.Validate([]byte(`{"sensorName":"S1"}`), SensorID))
	assert.Error(t, v.Validate([]byte(`{"sensorName":"S1","location":""}`), SensorID))
}

func TestValidateReading(t *testing.T) {
	v := MustNewValidator()

	// all fields are optional
	assert.NoError(t, v.Validate([]byte(`{}`), ReadingID))
	assert.NoError(t, v.Validate([]byte(`{"ph":6.5,"temperature":21.3,"soilNutrients":"NPK 10-10-10"}`), ReadingID))

	// but types are checked
	assert.Error(t, v.Validate([]byte(`{"ph":"acidic"}`), ReadingID))
	assert.Error(t, v.Validate([]byte(`{"soilNutrients":42}`), ReadingID))
}

func TestValidateAlert(t *testing.T) {
	v := MustNewValidator()

	assert.NoError(t, v.Validate([]byte(`{"message":"ph out of range","level":"WARNING"}`), AlertID))
	assert.Error(t, v.Validate([]byte(`{"message":"ph out of range","level":"SEVERE"}`), AlertID))
	assert.Error(t, v.Validate([]byte(`{"level":"INFO"}`), AlertID))
	assert.Error(t, v.Validate([]byte(`{"message":"","level":"INFO"}`), AlertID))
}

func TestValidateMalformedDocument(t *testing.T) {
	v := MustNewValidator()
	err := v.Validate([]byte(`{not json`), LoginID)
	assert.Error(t, err)
	assert.Equal(t, core.KindValidation, core.KindOf(err))
}
