// Package topic owns the topic resource: a named, partitioned message stream.
package topic

// Label is the admin wire discriminator for topics.
const Label = "Topic"

// DeleteKey addresses a topic by name.
type DeleteKey = string
