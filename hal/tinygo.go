//go:build tinygo && baremetal

package hal

import (
	"machine"

	"tinygo.org/x/drivers/pcd8544"
)

// Board wiring of the Pico build.
const (
	pinButtonUp   = machine.GP10
	pinButtonDown = machine.GP11
	pinButtonOK   = machine.GP12
	pinEncoderA   = machine.GP13
	pinEncoderB   = machine.GP14
	pinEncoderSW  = machine.GP15

	pinLCDSCE = machine.GP17
	pinLCDSCK = machine.GP18
	pinLCDSDO = machine.GP19
	pinLCDDC  = machine.GP20
	pinLCDRST = machine.GP21
)

type tinyGoHAL struct {
	logger *uartLogger
	led    *pinLED
	gpio   GPIO
	lcd    *pcd8544.Device
	i2c    *machine.I2C
	t      tinyGoTime
	net    Network
	serial Serial
}

// New returns the Raspberry Pi Pico HAL: an RDA5807M on I2C0 (GP4 SDA,
// GP5 SCL), a PCD8544 panel on SPI0 and buttons plus a rotary encoder on
// GP10..GP15, pulled up and active low.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})
	logger := &uartLogger{uart: uart}

	ledPin := machine.LED
	ledPin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	led := &pinLED{pin: ledPin}

	bus := machine.I2C0
	if err := bus.Configure(machine.I2CConfig{
		Frequency: 400 * machine.KHz,
		SDA:       machine.GP4,
		SCL:       machine.GP5,
	}); err != nil {
		logger.WriteLineString("i2c: " + err.Error())
	}

	machine.SPI0.Configure(machine.SPIConfig{
		Frequency: 4 * machine.MHz,
		SCK:       pinLCDSCK,
		SDO:       pinLCDSDO,
	})
	for _, p := range []machine.Pin{pinLCDDC, pinLCDRST, pinLCDSCE} {
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	}
	lcd := pcd8544.New(machine.SPI0, pinLCDDC, pinLCDRST, pinLCDSCE)
	lcd.Configure(pcd8544.Config{})
	lcd.ClearDisplay()

	pins := []GPIOPin{newLEDPin("LED", led)}
	for _, p := range []struct {
		name string
		pin  machine.Pin
	}{
		{"BTN_UP", pinButtonUp},
		{"BTN_DOWN", pinButtonDown},
		{"BTN_OK", pinButtonOK},
		{"ENC_A", pinEncoderA},
		{"ENC_B", pinEncoderB},
		{"ENC_SW", pinEncoderSW},
	} {
		pins = append(pins, &machinePin{name: p.name, pin: p.pin})
	}

	return &tinyGoHAL{
		logger: logger,
		led:    led,
		gpio:   newVirtualGPIO(pins),
		lcd:    lcd,
		i2c:    bus,
		net:    nullNetwork{},
		serial: &uartSerial{uart: uart},
	}
}

func (h *tinyGoHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHAL) LED() LED         { return h.led }
func (h *tinyGoHAL) GPIO() GPIO       { return h.gpio }
func (h *tinyGoHAL) Display() Display { return h.lcd }
func (h *tinyGoHAL) I2C() I2C         { return h.i2c }
func (h *tinyGoHAL) Time() Time       { return h.t }
func (h *tinyGoHAL) Network() Network { return h.net }
func (h *tinyGoHAL) Serial() Serial   { return h.serial }
