package io

// Write is one OUT instruction as seen by a Recorder.
type Write struct {
	Port  uint8
	Value uint8
}

// Recorder queues every write. A non-zero Limit bounds the queue.
type Recorder struct {
	Writes []Write
	Limit  int
}

func (rc *Recorder) Rewind() {
	rc.Writes = nil
}

func (rc *Recorder) Send(port uint8, value uint8) (err error) {
	if rc.Limit > 0 && len(rc.Writes) >= rc.Limit {
		err = ErrPortFull
		return
	}
	rc.Writes = append(rc.Writes, Write{Port: port, Value: value})
	return
}

// Next removes and returns the oldest write.
func (rc *Recorder) Next() (w Write, ok bool) {
	if len(rc.Writes) > 0 {
		ok = true
		w = rc.Writes[0]
		rc.Writes = rc.Writes[1:]
	}
	return
}

// Values returns the values written to one port, oldest first.
func (rc *Recorder) Values(port uint8) (values []uint8) {
	for _, w := range rc.Writes {
		if w.Port == port {
			values = append(values, w.Value)
		}
	}
	return
}
