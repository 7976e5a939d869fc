package protocol

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
)

const (
	typeString = descriptorpb.FieldDescriptorProto_TYPE_STRING
	typeDouble = descriptorpb.FieldDescriptorProto_TYPE_DOUBLE
	typeInt64  = descriptorpb.FieldDescriptorProto_TYPE_INT64
	typeUint32 = descriptorpb.FieldDescriptorProto_TYPE_UINT32
	typeMsg    = descriptorpb.FieldDescriptorProto_TYPE_MESSAGE
)

// hockeyFile is the descriptor of hockey.proto. Messages are handled as
// dynamicpb values, so the descriptor is assembled here instead of being
// generated.
var hockeyFile = mustFile(&descriptorpb.FileDescriptorProto{
	Name:    proto.String("hockey.proto"),
	Package: proto.String("hockey"),
	Syntax:  proto.String("proto2"),
	MessageType: []*descriptorpb.DescriptorProto{
		{
			Name: proto.String("Message"),
			Field: []*descriptorpb.FieldDescriptorProto{
				pbField("type", 1, typeString, ""),
				pbField("seq", 2, typeUint32, ""),
				inOneof(pbField("paddle", 3, typeMsg, "PaddleUpdate"), 0),
				inOneof(pbField("state", 4, typeMsg, "StateSnapshot"), 0),
				inOneof(pbField("event", 5, typeMsg, "GameEvent"), 0),
			},
			OneofDecl: []*descriptorpb.OneofDescriptorProto{
				{Name: proto.String("payload")},
			},
		},
		pbMessage("PaddleUpdate",
			pbField("side", 1, typeString, ""),
			pbField("x", 2, typeDouble, ""),
			pbField("y", 3, typeDouble, ""),
		),
		pbMessage("StateSnapshot",
			pbField("puck", 1, typeMsg, "Puck"),
			pbField("paddles", 2, typeMsg, "Paddles"),
			pbField("scores", 3, typeMsg, "Scores"),
			pbField("timestamp", 4, typeInt64, ""),
		),
		pbMessage("Puck",
			pbField("x", 1, typeDouble, ""),
			pbField("y", 2, typeDouble, ""),
			pbField("vx", 3, typeDouble, ""),
			pbField("vy", 4, typeDouble, ""),
			pbField("smash_time", 5, typeDouble, ""),
		),
		pbMessage("Paddles",
			pbField("left", 1, typeMsg, "Point"),
			pbField("right", 2, typeMsg, "Point"),
		),
		pbMessage("Point",
			pbField("x", 1, typeDouble, ""),
			pbField("y", 2, typeDouble, ""),
		),
		pbMessage("Scores",
			pbField("left", 1, typeInt64, ""),
			pbField("right", 2, typeInt64, ""),
		),
		pbMessage("GameEvent",
			pbField("event", 1, typeString, ""),
			pbField("side", 2, typeString, ""),
		),
	},
})

var envelopeDesc = hockeyFile.Messages().ByName("Message")

func mustFile(fd *descriptorpb.FileDescriptorProto) protoreflect.FileDescriptor {
	f, err := protodesc.NewFile(fd, new(protoregistry.Files))
	if err != nil {
		panic("protocol: bad hockey.proto descriptor: " + err.Error())
	}
	return f
}

func pbMessage(name string, fields ...*descriptorpb.FieldDescriptorProto) *descriptorpb.DescriptorProto {
	return &descriptorpb.DescriptorProto{Name: proto.String(name), Field: fields}
}

func pbField(name string, num int32, typ descriptorpb.FieldDescriptorProto_Type, msg string) *descriptorpb.FieldDescriptorProto {
	f := &descriptorpb.FieldDescriptorProto{
		Name:   proto.String(name),
		Number: proto.Int32(num),
		Label:  descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL.Enum(),
		Type:   typ.Enum(),
	}
	if msg != "" {
		f.TypeName = proto.String(".hockey." + msg)
	}
	return f
}

func inOneof(f *descriptorpb.FieldDescriptorProto, index int32) *descriptorpb.FieldDescriptorProto {
	f.OneofIndex = proto.Int32(index)
	return f
}
