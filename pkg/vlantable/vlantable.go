package vlantable

import (
	"fmt"

	"k8s.io/apimachinery/pkg/labels"

	"github.com/henderiw/rangeset/pkg/idxtable"
	"github.com/henderiw/rangeset/pkg/intervalset"
)

type VLANTable interface {
	Get(id int64) (labels.Set, error)
	Claim(id int64, d labels.Set) error
	ClaimDynamic(d labels.Set) (int64, error)
	ClaimRange(start, size int64, d labels.Set) error
	ClaimSize(size int64, d labels.Set) (int64, error)
	Release(id int64) error
	Update(id int64, d labels.Set) error

	Iterate() *idxtable.Iterator[labels.Set]

	Count() int64
	Has(id int64) bool

	IsFree(id int64) bool
	FindFree() (int64, error)
	FindFreeSize(size int64) (int64, error)

	Claimed() []intervalset.Interval[int64]
	Free() []intervalset.Interval[int64]
	GetAll() map[int64]labels.Set
	GetByLabel(selector labels.Selector) map[int64]labels.Set
}

var initEntries = map[int64]labels.Set{
	0:    map[string]string{"type": "untagged", "status": "reserved"},
	1:    map[string]string{"type": "untagged", "status": "reserved"},
	4095: map[string]string{"type": "untagged", "status": "reserved"},
}

func New() (VLANTable, error) {
	t, err := idxtable.NewTable[labels.Set](
		0,
		4096,
		initEntries,
		func(id int64) error {
			switch id {
			case 0:
				return fmt.Errorf("VLAN %d is the untagged VLAN, cannot be added to the database", id)
			case 1:
				return fmt.Errorf("VLAN %d is the default VLAN, cannot be added to the database", id)
			case 4095:
				return fmt.Errorf("VLAN %d is reserved, cannot be added to the database", id)
			}
			return nil
		},
	)
	if err != nil {
		return nil, err
	}
	return &vlanTable{Table: t}, nil
}

type vlanTable struct {
	idxtable.Table[labels.Set]
}

func (r *vlanTable) GetByLabel(selector labels.Selector) map[int64]labels.Set {
	entries := map[int64]labels.Set{}

	iter := r.Iterate()

	for iter.Next() {
		if selector.Matches(iter.Value()) {
			entries[iter.ID()] = iter.Value()
		}
	}
	return entries
}
