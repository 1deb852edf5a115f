package tunnel

import "fmt"

// Instruction is a discrete, already-framed unit of the interactive session
// protocol: an opcode naming the operation and its argument payload. The
// filter never mutates an instruction's content.
type Instruction struct {
	// Opcode names the operation, e.g. "key", "mouse", "sync".
	Opcode string

	// Args is the instruction's argument payload, opaque to SessionGate.
	Args []string
}

// String renders the instruction for logs and test failures.
func (i *Instruction) String() string {
	return fmt.Sprintf("%s%v", i.Opcode, i.Args)
}

// Reader produces instructions flowing from the remote resource toward the
// client. Read blocks until an instruction is available, the stream is
// closed (io.EOF), or the underlying transport fails.
type Reader interface {
	Read() (*Instruction, error)
}

// Writer consumes instructions flowing from the client toward the remote
// resource.
type Writer interface {
	Write(*Instruction) error
}

// Tunnel is an established bidirectional instruction stream between a client
// and a remote resource. Transports implement it; SessionGate only wraps it.
//
// Closing a tunnel closes the underlying stream; implementations must
// tolerate Close being called more than once.
type Tunnel interface {
	// Reader returns the resource-to-client side of the stream.
	Reader() Reader

	// Writer returns the client-to-resource side of the stream.
	Writer() Writer

	// Close terminates the stream in both directions.
	Close() error
}
