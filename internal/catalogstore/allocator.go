package catalogstore

import "math"

// maxSignedID is the last value a namespace's counter may hold before
// being read; once a counter equals this value, no further batch can be
// carved out of it without overflowing signed 64-bit storage.
const maxSignedID = math.MaxInt64

// allocate implements the read-modify-write at the heart of both
// namespaces' batch allocation: read the counter, fail if it has reached
// maxSignedID, write back counter+amount, and report the start of the
// half-open range [start, start+amount) the caller may now use.
//
// Consumers treat the returned values as unsigned 64-bit; the allocator
// uses signed 64-bit storage underneath, which is what the gid_alloc
// tables declare.
func allocate(t *Transaction, table string, amount uint64) (uint64, error) {
	var next int64
	if err := t.tx.QueryRow(`SELECT next_gid FROM ` + table).Scan(&next); err != nil {
		return 0, wrapDBErrorf(err, "reading %s counter", table)
	}
	if next == maxSignedID {
		return 0, ErrIdExhaustion
	}

	start := uint64(next)
	newNext := next + int64(amount)
	if _, err := t.tx.Exec(`UPDATE `+table+` SET next_gid = ?`, newNext); err != nil {
		return 0, wrapDBErrorf(err, "advancing %s counter", table)
	}
	return start, nil
}

// AllocateUserID carves a single id out of the user namespace and returns
// it as a User-tagged GlobalId. User allocation always requests a single
// id; only the system namespace is allocated in batches.
func (t *Transaction) AllocateUserID() (GlobalId, error) {
	start, err := allocate(t, "user_gid_alloc", 1)
	if err != nil {
		return GlobalId{}, err
	}
	return UserID(start), nil
}

// AllocateSystemIDs carves a contiguous batch of amount ids out of the
// system namespace and returns them as System-tagged GlobalIds in
// ascending order. An amount of zero allocates nothing and returns no ids.
func (t *Transaction) AllocateSystemIDs(amount uint64) ([]GlobalId, error) {
	if amount == 0 {
		return nil, nil
	}
	start, err := allocate(t, "system_gid_alloc", amount)
	if err != nil {
		return nil, err
	}
	ids := make([]GlobalId, amount)
	for i := range ids {
		ids[i] = SystemID(start + uint64(i))
	}
	return ids, nil
}

// AllocateUserID opens an implicit short transaction to carve a single id
// out of the user namespace.
func (h *Handle) AllocateUserID() (GlobalId, error) {
	var id GlobalId
	err := h.withTx(func(t *Transaction) error {
		var err error
		id, err = t.AllocateUserID()
		return err
	})
	return id, err
}

// AllocateSystemIDs opens an implicit short transaction to carve a batch
// of ids out of the system namespace.
func (h *Handle) AllocateSystemIDs(amount uint64) ([]GlobalId, error) {
	var ids []GlobalId
	err := h.withTx(func(t *Transaction) error {
		var err error
		ids, err = t.AllocateSystemIDs(amount)
		return err
	})
	return ids, err
}
