package rest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pershin-daniil/BoardMeetings/pkg/meetinglist"
)

func listState(view meetinglist.View, all bool) meetinglist.State {
	return meetinglist.State{View: view, ShowAll: all}
}

func TestDecodeState(t *testing.T) {
	s := &Server{decoder: newFormDecoder(time.UTC)}
	state, err := s.decodeState(createForm("10:00"))
	require.NoError(t, err)

	assert.Equal(t, "Styremøte", state.Values.Title)
	assert.Equal(t, time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC), state.Values.Date)
	assert.Equal(t, "10:00", state.Values.EndTime)
	assert.Equal(t, "0155", state.Values.Address.PostCode)
	assert.Equal(t, "09:00", state.Defaults.EndTime)
	assert.Empty(t, state.Defaults.Address.City)
	assert.True(t, state.CanSubmit())
}

func TestDecodeStateWithoutInitialIsDirty(t *testing.T) {
	s := &Server{decoder: newFormDecoder(time.UTC)}
	values := createForm("10:00")
	for key := range values {
		if len(key) > len(initialPrefix) && key[:len(initialPrefix)] == initialPrefix {
			delete(values, key)
		}
	}
	state, err := s.decodeState(values)
	require.NoError(t, err)
	assert.True(t, state.Dirty())
}

func TestDecodeStateEmptyDateKeepsInitial(t *testing.T) {
	s := &Server{decoder: newFormDecoder(time.UTC)}
	values := createForm("10:00")
	values.Set("date", "")
	state, err := s.decodeState(values)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 17, 0, 0, 0, 0, time.UTC), state.Values.Date)

	values.Set("initial.date", "")
	state, err = s.decodeState(values)
	require.NoError(t, err)
	assert.True(t, state.Values.Date.IsZero())
}

func TestListURL(t *testing.T) {
	assert.Equal(t, "/", listURL(listState(0, false)))
	assert.Equal(t, "/?all=1", listURL(listState(0, true)))
	assert.Equal(t, "/?all=1&view=archived", listURL(listState(1, true)))
}
