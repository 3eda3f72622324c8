package tmc2209

import "log"

// CalculateCRC computes the TMC2209 UART datagram CRC8 (poly 0x07,
// computed LSB-first) used to validate both directions of the wire
// protocol in UARTComm.
func CalculateCRC(data []byte) uint8 {
	crc := uint8(0)
	for _, b := range data {
		for i := 0; i < 8; i++ {
			if (crc>>7)^(b&0x01) == 1 {
				crc = (crc << 1) ^ 0x07
			} else {
				crc = crc << 1
			}
			b >>= 1
		}
	}
	return crc
}

// VerifyCommunication confirms the driver at driverIndex responds and
// reports the expected IOIN version field.
func VerifyCommunication(comm RegisterComm, driverIndex uint8) bool {
	io := NewIoin()
	raw, err := io.Read(comm, driverIndex)
	if err != nil {
		return false
	}
	io.Bytes = raw
	io.Unpack(raw)
	return io.Version == expectedVersion
}

// CheckErrorStatus reads DRV_STATUS and returns true when none of the
// short, open-load, or overtemperature flags are set. It returns false
// when any of them is set, and also when the register read fails.
func CheckErrorStatus(comm RegisterComm, driverIndex uint8) bool {
	d := NewDrvStatus()
	raw, err := d.Read(comm, driverIndex)
	if err != nil {
		return false
	}
	d.Bytes = raw
	d.Unpack(raw)
	errorFlags := d.Ola | d.S2vsa | d.S2vsb | d.Ot | d.S2ga | d.S2gb | d.Olb
	if errorFlags != 0 {
		log.Printf("TMC2209 Error Detected: %X", errorFlags)
		return false
	}
	return true
}

// GetInterfaceTransmissionCount reads IFCNT, which increments on every
// valid UART write the driver receives; useful for detecting dropped
// writes on a noisy line.
func GetInterfaceTransmissionCount(comm RegisterComm, driverIndex uint8) (uint32, error) {
	ifcnt := NewIfcnt()
	raw, err := ifcnt.Read(comm, driverIndex)
	if err != nil {
		return 0, err
	}
	return raw, nil
}
