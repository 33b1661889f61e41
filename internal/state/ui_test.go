package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-storefront/models"
)

func TestUIStore_Modals(t *testing.T) {
	ui := NewUIStore(time.Second, &seqIDs{})

	_, ok := ui.ActiveModal()
	assert.False(t, ok)

	ui.OpenModal("cart")
	ui.OpenModal("size-guide")

	active, ok := ui.ActiveModal()
	require.True(t, ok)
	assert.Equal(t, models.ModalID("size-guide"), active)

	ui.CloseModal("size-guide")
	active, _ = ui.ActiveModal()
	assert.Equal(t, models.ModalID("cart"), active)

	// reopening moves a modal to the top
	ui.OpenModal("search")
	ui.OpenModal("cart")
	assert.Equal(t, []models.ModalID{"search", "cart"}, ui.OpenModals())

	assert.False(t, ui.ToggleModal("cart"))
	assert.False(t, ui.IsModalOpen("cart"))
	assert.True(t, ui.ToggleModal("cart"))
	assert.True(t, ui.IsModalOpen("cart"))

	ui.CloseAllModals()
	assert.Empty(t, ui.OpenModals())
	assert.False(t, ui.IsModalOpen("search"))
}

func TestUIStore_ToastExpires(t *testing.T) {
	ui := NewUIStore(time.Hour, &seqIDs{})

	short := ui.AddToast(models.Toast{Title: "Added to cart", Duration: 20 * time.Millisecond})
	long := ui.AddToast(models.Toast{Title: "Welcome", Kind: models.ToastSuccess})

	toasts := ui.Toasts()
	require.Len(t, toasts, 2)
	assert.Equal(t, models.ToastInfo, toasts[0].Kind)
	assert.Equal(t, time.Hour, toasts[1].Duration)

	require.Eventually(t, func() bool {
		return len(ui.Toasts()) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, long, ui.Toasts()[0].ID)
	assert.False(t, ui.RemoveToast(short))

	assert.True(t, ui.RemoveToast(long))
	assert.Empty(t, ui.Toasts())
}

func TestUIStore_ClearToasts(t *testing.T) {
	ui := NewUIStore(time.Hour, &seqIDs{})

	ui.AddToast(models.Toast{Title: "a"})
	ui.AddToast(models.Toast{Title: "b", Duration: 10 * time.Millisecond})
	ui.ClearToasts()
	assert.Empty(t, ui.Toasts())

	// a cleared toast's timer must not remove a later toast
	id := ui.AddToast(models.Toast{Title: "c"})
	time.Sleep(30 * time.Millisecond)
	require.Len(t, ui.Toasts(), 1)
	assert.Equal(t, id, ui.Toasts()[0].ID)
	ui.Close()
}

func TestUIStore_MenuAndSearch(t *testing.T) {
	ui := NewUIStore(time.Second, &seqIDs{})

	assert.True(t, ui.ToggleMobileMenu())
	assert.True(t, ui.MobileMenuOpen())
	ui.SetMobileMenuOpen(false)
	assert.False(t, ui.MobileMenuOpen())

	ui.SetSearchOpen(true)
	assert.True(t, ui.SearchOpen())
}

func TestUIStore_ReAddedToastOutlivesOldTimer(t *testing.T) {
	ui := NewUIStore(time.Hour, &seqIDs{})
	t.Cleanup(ui.Close)

	for i := 0; i < 200; i++ {
		ui.AddToast(models.Toast{ID: "t", Title: "short", Duration: time.Millisecond})
		time.Sleep(time.Millisecond)
		ui.AddToast(models.Toast{ID: "t", Title: "long", Duration: time.Hour})
		time.Sleep(2 * time.Millisecond)

		toasts := ui.Toasts()
		require.Len(t, toasts, 1, "iteration %d", i)
		assert.Equal(t, "long", toasts[0].Title)
	}
}
