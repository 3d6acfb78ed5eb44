package request

// RegisterPrinterRequest connects a new ticket printer.
type RegisterPrinterRequest struct {
	Name       string `json:"name" binding:"required,min=1,max=100"`
	Type       string `json:"type" binding:"required,oneof=network usb serial"`
	Address    string `json:"address" binding:"omitempty,max=255"`
	DevicePath string `json:"device_path" binding:"omitempty,max=255"`
}
