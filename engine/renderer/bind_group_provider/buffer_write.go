package bind_group_provider

// BufferWrite is one queued upload into a provider's uniform buffer.
type BufferWrite struct {
	Provider BindGroupProvider
	Binding  int
	Offset   uint64
	Data     []byte
}
