package admin

import (
	"github.com/danmuck/scadmin/internal/resource/spg"
	"github.com/danmuck/scadmin/internal/resource/spu"
	"github.com/danmuck/scadmin/internal/resource/topic"
)

// DeleteSpec is satisfied by every removable resource spec. K is the key
// shape addressing one instance of the resource.
type DeleteSpec[K any] interface {
	Label() string
	IntoRequest(key K) DeleteRequest
}

// IntoRequest builds the delete request for key using spec S:
//
//	admin.IntoRequest[admin.TopicSpec]("orders")
func IntoRequest[S DeleteSpec[K], K any](key K) DeleteRequest {
	var spec S
	return spec.IntoRequest(key)
}

// DeleteCustomSpuKey converts v into a custom SPU key and builds its request.
func DeleteCustomSpuKey[T spu.KeyValue](v T) DeleteRequest {
	return CustomSpuSpec{}.IntoRequest(spu.Key(v))
}

// DeleteTopicName builds a topic delete from any string-kinded name.
func DeleteTopicName[T ~string](name T) DeleteRequest {
	return TopicSpec{}.IntoRequest(string(name))
}

// DeleteSpuGroupName builds an SPU group delete from any string-kinded name.
func DeleteSpuGroupName[T ~string](name T) DeleteRequest {
	return SpuGroupSpec{}.IntoRequest(string(name))
}

// TopicSpec deletes topics. Its key is the topic name; use DeleteTopicName
// for named string types.
type TopicSpec struct{}

func (TopicSpec) Label() string { return topic.Label }

func (TopicSpec) IntoRequest(name topic.DeleteKey) DeleteRequest {
	return DeleteTopic{Name: name}
}

// CustomSpuSpec deletes custom SPUs by name or id. Convertible values go
// through DeleteCustomSpuKey.
type CustomSpuSpec struct{}

func (CustomSpuSpec) Label() string { return spu.CustomLabel }

func (CustomSpuSpec) IntoRequest(key spu.CustomSpuKey) DeleteRequest {
	return DeleteCustomSpu{Key: key}
}

// SpuGroupSpec deletes SPU groups. Its key is the group name; use
// DeleteSpuGroupName for named string types.
type SpuGroupSpec struct{}

func (SpuGroupSpec) Label() string { return spg.Label }

func (SpuGroupSpec) IntoRequest(name spg.DeleteKey) DeleteRequest {
	return DeleteSpuGroup{Name: name}
}

// NewDeleteRequest builds the delete request for key using a spec value.
func NewDeleteRequest[K any](spec DeleteSpec[K], key K) DeleteRequest {
	return spec.IntoRequest(key)
}
