package provider

// Registry 이름으로 프로바이더를 찾습니다.
type Registry map[Name]Provider

// NewRegistry 같은 이름의 프로바이더가 여러 개이면 마지막 것이 사용됩니다.
func NewRegistry(providers ...Provider) Registry {
	r := make(Registry, len(providers))
	for _, p := range providers {
		if p != nil {
			r[p.Name()] = p
		}
	}
	return r
}

// Lookup 등록되지 않은 이름이면 InvalidInput 오류를 반환합니다.
func (r Registry) Lookup(name Name) (Provider, error) {
	if p, ok := r[name]; ok {
		return p, nil
	}
	return nil, newErrUnknownProvider(name)
}
