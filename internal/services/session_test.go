package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/foodetl/internal/logging"
	"github.com/vvka-141/foodetl/pkg/foodetl"
)

func TestNewSessionManager_NilDeps(t *testing.T) {
	factory := func(*foodetl.ConnectionConfig) (foodetl.Connector, error) { return &mockConnector{}, nil }

	assert.Panics(t, func() { NewSessionManager(nil, logging.NewNullLogger()) })
	assert.Panics(t, func() { NewSessionManager(factory, nil) })
}

func TestPrepareSession_FactoryFails(t *testing.T) {
	factory := func(*foodetl.ConnectionConfig) (foodetl.Connector, error) {
		return nil, foodetl.ErrUnsupportedAuthMethod
	}
	sm := NewSessionManager(factory, logging.NewNullLogger())

	_, err := sm.PrepareSession(context.Background(), &foodetl.ConnectionConfig{Database: "food"})
	require.Error(t, err)
	assert.ErrorIs(t, err, foodetl.ErrUnsupportedAuthMethod)
	assert.Contains(t, err.Error(), "failed to create connector")
}

func TestPrepareSession_ConnectFails(t *testing.T) {
	connector := &closingConnector{mockConnector: mockConnector{err: fmt.Errorf("%w: refused", foodetl.ErrConnectionFailed)}}
	factory := func(*foodetl.ConnectionConfig) (foodetl.Connector, error) { return connector, nil }
	sm := NewSessionManager(factory, logging.NewNullLogger())

	_, err := sm.PrepareSession(context.Background(), &foodetl.ConnectionConfig{Database: "food"})

	require.Error(t, err)
	assert.ErrorIs(t, err, foodetl.ErrConnectionFailed)
	assert.Contains(t, err.Error(), `database "food"`)
	assert.Equal(t, 1, connector.closed, "connector resources are released on failure")
}

func TestPrepareSession_PlainConnectorError(t *testing.T) {
	boom := errors.New("boom")
	factory := func(*foodetl.ConnectionConfig) (foodetl.Connector, error) { return &mockConnector{err: boom}, nil }

	_, err := NewSessionManager(factory, logging.NewNullLogger()).
		PrepareSession(context.Background(), &foodetl.ConnectionConfig{})
	assert.ErrorIs(t, err, boom)
}
