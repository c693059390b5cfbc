//go:build unit

package internal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/dig"

	"github.com/rios0rios0/dependactor/internal"
)

func TestRegisterProviders(t *testing.T) {
	t.Parallel()

	t.Run("should resolve the application with every controller", func(t *testing.T) {
		t.Parallel()

		// given
		container := dig.New()
		require.NoError(t, internal.RegisterProviders(container))

		// when
		var app *internal.AppInternal
		err := container.Invoke(func(ai *internal.AppInternal) { app = ai })

		// then
		require.NoError(t, err)
		uses := make([]string, 0)
		for _, controller := range app.GetControllers() {
			uses = append(uses, controller.GetBind().Use)
		}
		assert.Equal(t, []string{"update", "plan"}, uses)
	})
}
