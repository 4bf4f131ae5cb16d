package plan

import (
	"fmt"

	"github.com/dianpeng/byoo/catalog"
)

type UnknownOperatorError struct {
	Op string
}

func (self *UnknownOperatorError) Error() string {
	return fmt.Sprintf("unknown byoo operator requested: %s", self.Op)
}

type InvalidChildCountError struct {
	Op       string
	Expected catalog.ChildCount
	Actual   int
}

func (self *InvalidChildCountError) Error() string {
	return fmt.Sprintf(
		"operator %s was expecting %s children, got %d",
		self.Op,
		self.Expected,
		self.Actual,
	)
}

// File option mismatch. Expected is true when the operator needs a file but
// none was given, false when a file was given to an operator not using one.
type OperatorFileError struct {
	Op       string
	Expected bool
}

func (self *OperatorFileError) Error() string {
	if self.Expected {
		return fmt.Sprintf("operator %s was expecting a file", self.Op)
	}
	return fmt.Sprintf("operator %s was not expecting a file", self.Op)
}

type InvalidOptionError struct {
	Op     string
	Key    string
	Reason string
}

func (self *InvalidOptionError) Error() string {
	return fmt.Sprintf("operator %s has invalid option %q: %s", self.Op, self.Key, self.Reason)
}

type UnknownRelationError struct {
	Name string
}

func (self *UnknownRelationError) Error() string {
	return fmt.Sprintf("relation %s is not in the database", self.Name)
}

type DuplicateRelationError struct {
	Name string
}

func (self *DuplicateRelationError) Error() string {
	return fmt.Sprintf("the relation %s was already in the database", self.Name)
}

type UnknownFileTypeError struct {
	File string
}

func (self *UnknownFileTypeError) Error() string {
	return fmt.Sprintf("unknown file type for: %s", self.File)
}

// A child already attached to a parent, or given twice to the same parent
type ChildOwnedError struct {
	Op    string
	Child string
	Index int
}

func (self *ChildOwnedError) Error() string {
	return fmt.Sprintf(
		"operator %s child %d (%s) is already part of a plan",
		self.Op,
		self.Index,
		self.Child,
	)
}
