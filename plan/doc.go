// Package plan builds byoo query plans.
//
// A plan is a tree of operators taken from the operator catalog. Data flows
// from the leaves up to the root, every leaf is a reader and the root is
// usually a writer.
//
//	csv out (file=out.csv)
//	  project (cols=[0 5])
//	    hash join (left_cols=[0] right_cols=[0])
//	      csv read (file=test1.csv)
//	      csv read (file=test2.csv)
//
// 1) Create
//    The builder checks the operator is known and the number of children
//    matches what the catalog says. Aliases using '_' instead of ' ' are
//    accepted, the node always carries the canonical name.
//
// 2) SetOption
//    Options are free form, except file which is only accepted by operators
//    reading or writing a file, and types which is expanded from its short
//    code form, ie "iitr", into the executor type names.
//
// 3) Serialize
//    The tree is turned into the IR handed to the executor. A reader or a
//    writer without a file fails here, the option order is kept as set.
//
// The IR decodes back into a node tree through the same builder, so a plan
// written by hand in JSON or YAML gets the very same checks.
package plan
