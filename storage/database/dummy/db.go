package dummydb

import (
	"sync"

	"github.com/tujenge/mipango/core/department"
	"github.com/tujenge/mipango/core/meeting"
	"github.com/tujenge/mipango/core/task"
)

type (
	DB struct {
		task       *taskTable
		department *departmentTable
		document   *documentTable
		meeting    *meetingTable
	}

	taskTable struct {
		sync.RWMutex
		table map[string]*task.Task
	}

	departmentTable struct {
		sync.RWMutex
		table map[string]*department.Department
	}

	documentTable struct {
		sync.RWMutex
		table map[string]*department.Document
	}

	meetingTable struct {
		sync.RWMutex
		table map[string]*meeting.Meeting
	}
)

func Open() (*DB, error) {
	db := &DB{
		task:       &taskTable{table: make(map[string]*task.Task)},
		department: &departmentTable{table: make(map[string]*department.Department)},
		document:   &documentTable{table: make(map[string]*department.Document)},
		meeting:    &meetingTable{table: make(map[string]*meeting.Meeting)},
	}
	return db, nil
}
