// Package inmemdb provides map-backed repositories with the same semantics as
// the Postgres ones. They back the test suites and need no running database.
package inmemdb

import (
	"sync"

	"github.com/mbizohigh/chikoro/core/event"
	"github.com/mbizohigh/chikoro/core/notice"
	"github.com/mbizohigh/chikoro/core/payment"
	"github.com/mbizohigh/chikoro/core/portfolio"
	"github.com/mbizohigh/chikoro/core/resource"
	"github.com/mbizohigh/chikoro/core/smslog"
	"github.com/mbizohigh/chikoro/core/student"
	"github.com/mbizohigh/chikoro/core/user"
)

type (
	DB struct {
		user      *userTable
		student   *studentTable
		notice    *noticeTable
		payment   *paymentTable
		smsLog    *smsLogTable
		resource  *resourceTable
		event     *eventTable
		portfolio *portfolioTable
	}

	userTable struct {
		table map[string]*user.User
		seq   map[string]int
		next  int
		mutex sync.RWMutex
	}

	studentTable struct {
		table map[string]*student.Student
		seq   map[string]int
		next  int
		mutex sync.RWMutex
	}

	noticeTable struct {
		table map[string]*notice.Notice
		mutex sync.RWMutex
	}

	paymentTable struct {
		table map[string]*payment.Payment
		mutex sync.RWMutex
	}

	smsLogTable struct {
		table map[string]*smslog.Entry
		mutex sync.RWMutex
	}

	resourceTable struct {
		table map[string]*resource.Resource
		mutex sync.RWMutex
	}

	eventTable struct {
		table map[string]*event.Event
		mutex sync.RWMutex
	}

	portfolioTable struct {
		table map[string]*portfolio.Portfolio
		mutex sync.RWMutex
	}
)

func Open() *DB {
	return &DB{
		user:      &userTable{table: make(map[string]*user.User), seq: make(map[string]int)},
		student:   &studentTable{table: make(map[string]*student.Student), seq: make(map[string]int)},
		notice:    &noticeTable{table: make(map[string]*notice.Notice)},
		payment:   &paymentTable{table: make(map[string]*payment.Payment)},
		smsLog:    &smsLogTable{table: make(map[string]*smslog.Entry)},
		resource:  &resourceTable{table: make(map[string]*resource.Resource)},
		event:     &eventTable{table: make(map[string]*event.Event)},
		portfolio: &portfolioTable{table: make(map[string]*portfolio.Portfolio)},
	}
}

// Clear wipes every table. Handy between test cases.
func (db *DB) Clear() {
	db.user.mutex.Lock()
	db.user.table = make(map[string]*user.User)
	db.user.seq = make(map[string]int)
	db.user.mutex.Unlock()

	db.student.mutex.Lock()
	db.student.table = make(map[string]*student.Student)
	db.student.seq = make(map[string]int)
	db.student.mutex.Unlock()

	db.notice.mutex.Lock()
	db.notice.table = make(map[string]*notice.Notice)
	db.notice.mutex.Unlock()

	db.payment.mutex.Lock()
	db.payment.table = make(map[string]*payment.Payment)
	db.payment.mutex.Unlock()

	db.smsLog.mutex.Lock()
	db.smsLog.table = make(map[string]*smslog.Entry)
	db.smsLog.mutex.Unlock()

	db.resource.mutex.Lock()
	db.resource.table = make(map[string]*resource.Resource)
	db.resource.mutex.Unlock()

	db.event.mutex.Lock()
	db.event.table = make(map[string]*event.Event)
	db.event.mutex.Unlock()

	db.portfolio.mutex.Lock()
	db.portfolio.table = make(map[string]*portfolio.Portfolio)
	db.portfolio.mutex.Unlock()
}
