package placement

import "strings"

// ParseAlreadyAssigned recovers an AlreadyAssignedError from its message
// form. The assignment RPC surfaces the prior decision as an ALREADY_EXISTS
// status whose description is produced by AlreadyAssignedError.Error;
// consumers parse it back to learn where the chunk already lives.
func ParseAlreadyAssigned(msg string) (*AlreadyAssignedError, bool) {
	const marker = "chunk already assigned to worker "
	i := strings.Index(msg, marker)
	if i < 0 {
		return nil, false
	}
	rest := msg[i+len(marker):]
	workerID, addr, ok := strings.Cut(rest, " at ")
	if !ok || workerID == "" || addr == "" {
		return nil, false
	}
	return &AlreadyAssignedError{WorkerID: workerID, Address: addr}, true
}
