package models

import "time"

// ModalID identifies a modal, drawer or dialog.
type ModalID string

// ToastKind selects the visual flavour of a toast notification.
type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
	ToastWarning ToastKind = "warning"
	ToastInfo    ToastKind = "info"
)

// Toast is a timed notification. A zero Duration means the default one.
type Toast struct {
	ID        string        `json:"id"`
	Kind      ToastKind     `json:"kind"`
	Title     string        `json:"title"`
	Message   string        `json:"message,omitempty"`
	Duration  time.Duration `json:"duration"`
	CreatedAt time.Time     `json:"created_at"`
}
