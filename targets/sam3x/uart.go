//go:build sam3x8e

package main

// UART on PA8 (URXD) / PA9 (UTXD), peripheral A. This is the port behind
// the Due's programming USB connector.
const (
	uartBase = 0x400E0800

	uartCR   = uartBase + 0x00
	uartMR   = uartBase + 0x04
	uartIDR  = uartBase + 0x0C
	uartSR   = uartBase + 0x14
	uartRHR  = uartBase + 0x18
	uartTHR  = uartBase + 0x1C
	uartBRGR = uartBase + 0x20

	uartPins = 1<<8 | 1<<9
)

const (
	uartCR_RSTRX = 1 << 2
	uartCR_RSTTX = 1 << 3
	uartCR_RXEN  = 1 << 4
	uartCR_TXEN  = 1 << 6

	uartMR_PAR_NO = 4 << 9

	uartSR_RXRDY = 1 << 0
	uartSR_TXRDY = 1 << 1
)

// uart is a polled, unbuffered implementation of drivers.UART
type uart struct{}

func configureUART(baud uint32) uart {
	enablePeripheralClock(idUART)
	selectPeripheral(pioaBase, uartPins, false)

	reg(uartCR).Set(uartCR_RSTRX | uartCR_RSTTX)
	reg(uartIDR).Set(0xFFFFFFFF)
	reg(uartMR).Set(uartMR_PAR_NO)
	reg(uartBRGR).Set((masterClock + 8*baud) / (16 * baud))
	reg(uartCR).Set(uartCR_RXEN | uartCR_TXEN)
	return uart{}
}

func (uart) Write(p []byte) (int, error) {
	for _, c := range p {
		for !reg(uartSR).HasBits(uartSR_TXRDY) {
		}
		reg(uartTHR).Set(uint32(c))
	}
	return len(p), nil
}

// Read returns at most the one byte held in RHR
func (u uart) Read(p []byte) (int, error) {
	if len(p) == 0 || u.Buffered() == 0 {
		return 0, nil
	}
	p[0] = byte(reg(uartRHR).Get())
	return 1, nil
}

func (uart) Buffered() int {
	if reg(uartSR).HasBits(uartSR_RXRDY) {
		return 1
	}
	return 0
}
