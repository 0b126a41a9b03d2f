package io

// Bus delivers each write to every attached port, in order.
type Bus []Port

func (bus Bus) Rewind() {
	for _, port := range bus {
		port.Rewind()
	}
}

// Send stops at the first port that refuses the write.
func (bus Bus) Send(port uint8, value uint8) (err error) {
	for _, dev := range bus {
		err = dev.Send(port, value)
		if err != nil {
			return
		}
	}
	return
}
