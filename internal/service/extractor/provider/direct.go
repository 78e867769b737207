package provider

import (
	"context"
	"net/http"

	"github.com/koreahan/coupang/internal/service/scraper"
)

// Direct 프로바이더를 거치지 않고 상품 페이지를 직접 요청합니다. 렌더링은 지원하지 않습니다.
type Direct struct {
	scraper scraper.Scraper
}

var _ Provider = (*Direct)(nil)

func NewDirect(sc scraper.Scraper) *Direct {
	if sc == nil {
		panic("Scraper는 필수입니다")
	}
	return &Direct{scraper: sc}
}

func (d *Direct) Name() Name {
	return NameDirect
}

func (d *Direct) Fetch(ctx context.Context, req Request) (*Response, error) {
	if req.Render {
		return nil, ErrRenderNotSupported
	}

	page, err := d.scraper.FetchPage(ctx, http.MethodGet, req.TargetURL, DeviceHeader(req.Device))
	if err != nil {
		return nil, err
	}

	return &Response{
		HTML:       page.Body,
		StatusCode: page.StatusCode,
		FinalURL:   page.URL,
		RawSize:    page.RawSize,
	}, nil
}
