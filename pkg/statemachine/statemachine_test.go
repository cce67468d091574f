package statemachine_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anita-maxwynn/Django-Practice/pkg/statemachine"
)

type status string

type event string

const (
	draft     status = "draft"
	published status = "published"
	archived  status = "archived"

	publish event = "publish"
	archive event = "archive"
)

func isAdmin(_ context.Context, _ status, _ event, data any) bool {
	role, _ := data.(string)
	return role == "admin"
}

func newTable() *statemachine.Table[status, event] {
	return statemachine.NewBuilder[status, event]().
		From(draft).When(publish).To(published).Add().
		From(published).When(archive).To(archived).WithGuard(isAdmin).Add().
		Build()
}

func TestTable_Next(t *testing.T) {
	t.Parallel()

	table := newTable()
	ctx := context.Background()

	tests := []struct {
		name     string
		from     status
		event    event
		data     any
		want     status
		noTrans  bool
		rejected bool
	}{
		{name: "allowed", from: draft, event: publish, want: published},
		{name: "guard passes", from: published, event: archive, data: "admin", want: archived},
		{name: "guard rejects", from: published, event: archive, data: "user", want: published, rejected: true},
		{name: "unknown pair", from: archived, event: publish, want: archived, noTrans: true},
		{name: "wrong event for state", from: draft, event: archive, want: draft, noTrans: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := table.Next(ctx, tt.from, tt.event, tt.data)
			assert.Equal(t, tt.want, got)

			switch {
			case tt.noTrans:
				assert.True(t, statemachine.IsNoTransitionAvailableError(err))
				assert.Contains(t, err.Error(), fmt.Sprintf("'%s'", tt.from))
			case tt.rejected:
				assert.True(t, statemachine.IsTransitionRejectedError(err))
			default:
				require.NoError(t, err)
			}
			assert.Equal(t, err == nil, table.Can(ctx, tt.from, tt.event, tt.data))
		})
	}
}

func TestTable_FirstPassingTransitionWins(t *testing.T) {
	t.Parallel()

	table := statemachine.NewBuilder[status, event]().
		From(published).When(archive).To(archived).WithGuard(isAdmin).Add().
		From(published).When(archive).To(draft).Add().
		Build()

	got, err := table.Next(context.Background(), published, archive, "admin")
	require.NoError(t, err)
	assert.Equal(t, archived, got)

	got, err = table.Next(context.Background(), published, archive, "user")
	require.NoError(t, err)
	assert.Equal(t, draft, got)
}

func TestTable_Events(t *testing.T) {
	t.Parallel()

	table := newTable()
	assert.ElementsMatch(t, []event{publish}, table.Events(draft))
	assert.ElementsMatch(t, []event{archive}, table.Events(published))
	assert.Empty(t, table.Events(archived))
}

func TestTable_ConcurrentUse(t *testing.T) {
	t.Parallel()

	table := statemachine.NewTable[status, event]()
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			table.Add(statemachine.Transition[status, event]{From: draft, Event: publish, To: published})
		}()
		go func() {
			defer wg.Done()
			_, _ = table.Next(context.Background(), draft, publish, i)
		}()
	}
	wg.Wait()

	assert.True(t, table.Can(context.Background(), draft, publish, nil))
}
