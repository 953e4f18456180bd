// Package spg owns the SPU group resource: a managed set of streaming
// processing units provisioned together.
package spg

// Label is the admin wire discriminator for SPU groups.
const Label = "SpuGroup"

// DeleteKey addresses a group by name.
type DeleteKey = string
