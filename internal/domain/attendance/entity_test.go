package attendance

import "testing"

func TestStatusIsValid(t *testing.T) {
	for _, s := range ValidStatuses() {
		if !s.IsValid() {
			t.Errorf("status %s should be valid", s)
		}
	}
	for _, s := range []Status{"", "pending_manager", "DRAFT"} {
		if s.IsValid() {
			t.Errorf("status %q should be invalid", s)
		}
	}
}

func TestStatusGuards(t *testing.T) {
	cases := []struct {
		status             Status
		blocksResubmission bool
		managerCanDecide   bool
		adminCanDecide     bool
	}{
		{StatusPendingManager, false, true, false},
		{StatusPendingAdmin, true, false, true},
		{StatusApproved, true, false, false},
		{StatusRejected, false, false, true},
	}
	for _, c := range cases {
		if got := c.status.BlocksResubmission(); got != c.blocksResubmission {
			t.Errorf("%s.BlocksResubmission() = %v, want %v", c.status, got, c.blocksResubmission)
		}
		if got := c.status.ManagerCanDecide(); got != c.managerCanDecide {
			t.Errorf("%s.ManagerCanDecide() = %v, want %v", c.status, got, c.managerCanDecide)
		}
		if got := c.status.AdminCanDecide(); got != c.adminCanDecide {
			t.Errorf("%s.AdminCanDecide() = %v, want %v", c.status, got, c.adminCanDecide)
		}
	}
}
