package app

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/feLLpe04/Project3/internal/appconf"
)

func TestBlankKeyIsInvalid(t *testing.T) {
	app := &Application{
		Config: appconf.Config{
			ApiKeys: []string{"key"},
		},
	}
	assert.True(t, app.IsInvalidAPIKey(""))
}

func TestConfiguredKeyIsValid(t *testing.T) {
	app := &Application{
		Config: appconf.Config{
			ApiKeys: []string{"one", "two"},
		},
	}
	assert.False(t, app.IsInvalidAPIKey("two"))
	assert.True(t, app.IsInvalidAPIKey("three"))
}

func TestRequestKeyCheckIsSkippedWithoutConfiguredKeys(t *testing.T) {
	app := &Application{}
	req := httptest.NewRequest("GET", "/api/dimensions.json", nil)
	assert.False(t, app.RequestHasInvalidAPIKey(req))
}

func TestRequestKeyCheckReadsQueryParameter(t *testing.T) {
	app := &Application{
		Config: appconf.Config{
			ApiKeys: []string{"TEST"},
		},
	}
	assert.False(t, app.RequestHasInvalidAPIKey(httptest.NewRequest("GET", "/api/dimensions.json?key=TEST", nil)))
	assert.True(t, app.RequestHasInvalidAPIKey(httptest.NewRequest("GET", "/api/dimensions.json?key=nope", nil)))
	assert.True(t, app.RequestHasInvalidAPIKey(httptest.NewRequest("GET", "/api/dimensions.json", nil)))
}

func TestReadyFollowsDataset(t *testing.T) {
	app := &Application{}
	assert.False(t, app.Ready())
}
