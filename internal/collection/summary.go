package collection

type verifiedReporter interface {
	IsVerified() bool
}

type familySizer interface {
	FamilySize() int
}

type locator interface {
	HasLocation() bool
}

// Summary aggregates the current page for the dashboard cards.
type Summary struct {
	Visible  int
	Verified int
	Pending  int
	Families int
	Mapped   int
	Selected int
}

func (v *View[T]) Summary() Summary {
	v.mu.Lock()
	defer v.mu.Unlock()

	s := Summary{Visible: len(v.records), Selected: v.selection.Len()}
	for _, r := range v.records {
		if vr, ok := any(r).(verifiedReporter); ok {
			if vr.IsVerified() {
				s.Verified++
			} else {
				s.Pending++
			}
		}
		if fs, ok := any(r).(familySizer); ok {
			s.Families += fs.FamilySize()
		}
		if l, ok := any(r).(locator); ok && l.HasLocation() {
			s.Mapped++
		}
	}
	return s
}
