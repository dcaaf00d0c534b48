package grid

import (
	"context"

	"github.com/jhoicas/compras-grid/internal/domain/entity"
)

// ProductCatalog proveedor del catálogo de productos (solo lectura).
type ProductCatalog interface {
	ListCatalog(ctx context.Context) ([]entity.Product, error)
}

// InvoiceSaver colaborador que persiste la factura ya calculada.
type InvoiceSaver interface {
	SaveInvoice(ctx context.Context, inv *entity.Invoice) error
}

// NotificationKind tipo de aviso (toast) para la UI.
type NotificationKind string

const (
	NotifySuccess    NotificationKind = "success"
	NotifyValidation NotificationKind = "validation"
)

// Notification aviso emitido por la grilla; la presentación es externa.
type Notification struct {
	Kind    NotificationKind `json:"kind"`
	Message string           `json:"message"`
}

// Notifier recibe los avisos de éxito y de validación.
type Notifier interface {
	Notify(n Notification)
}

type nopNotifier struct{}

func (nopNotifier) Notify(Notification) {}

// Mensajes mostrados al usuario (la aplicación es en árabe).
const (
	msgItemAdded      = "تمت إضافة الصنف بنجاح"
	msgItemUpdated    = "تم تحديث الصنف بنجاح"
	msgItemRemoved    = "تم حذف الصنف"
	msgInvoiceSaved   = "تم حفظ فاتورة المشتريات بنجاح"
	msgNoItems        = "يجب إضافة صنف واحد على الأقل"
	msgItemIncomplete = "يرجى إدخال اسم الصنف أو الكود وكمية أكبر من صفر"
	msgCellRejected   = "القيمة المدخلة غير صالحة ولم يتم حفظها"
)
