package hrclient

import (
	"context"
	"net/http"
	"net/url"
)

type InterviewsAPI struct {
	c *Client
}

func (a *InterviewsAPI) List(ctx context.Context) ([]Interview, error) {
	if items, ok := cached[[]Interview](a.c.cache, kindInterviews, allInterviewsKey); ok {
		return items, nil
	}

	var out []Interview
	if err := a.c.do(ctx, http.MethodGet, "/interviews", nil, &out); err != nil {
		return nil, err
	}
	a.c.cache.set(kindInterviews, allInterviewsKey, out)
	return out, nil
}

func (a *InterviewsAPI) ListByEmployee(ctx context.Context, employeeID string) ([]Interview, error) {
	if items, ok := cached[[]Interview](a.c.cache, kindEmployeeInterviews, employeeID); ok {
		return items, nil
	}

	var out []Interview
	path := "/interviews?" + url.Values{"userId": {employeeID}}.Encode()
	if err := a.c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	a.c.cache.set(kindEmployeeInterviews, employeeID, out)
	return out, nil
}

func (a *InterviewsAPI) Create(ctx context.Context, req CreateInterviewRequest) (*Interview, error) {
	var out Interview
	if err := a.c.do(ctx, http.MethodPost, "/interviews", req, &out); err != nil {
		return nil, err
	}
	a.c.cache.InvalidateEmployee(out.EmployeeID)
	return &out, nil
}

// Update invalidates the owning employee; when the interview moves, the
// previous owner is only known from the cached lists, so those are cleared too.
func (a *InterviewsAPI) Update(ctx context.Context, id string, req UpdateInterviewRequest) (*Interview, error) {
	previous := a.ownerOf(id)

	var out Interview
	if err := a.c.do(ctx, http.MethodPut, "/interviews/"+url.PathEscape(id), req, &out); err != nil {
		return nil, err
	}
	a.c.cache.InvalidateEmployee(out.EmployeeID)
	if previous != "" && previous != out.EmployeeID {
		a.c.cache.InvalidateEmployee(previous)
	}
	return &out, nil
}

func (a *InterviewsAPI) Delete(ctx context.Context, id string) error {
	owner := a.ownerOf(id)

	if err := a.c.do(ctx, http.MethodDelete, "/interviews/"+url.PathEscape(id), nil, nil); err != nil {
		return err
	}
	if owner != "" {
		a.c.cache.InvalidateEmployee(owner)
	} else {
		a.c.cache.Clear()
	}
	return nil
}

// ownerOf looks the interview up in whatever the cache already holds.
func (a *InterviewsAPI) ownerOf(id string) string {
	a.c.cache.mu.RLock()
	defer a.c.cache.mu.RUnlock()
	for key, value := range a.c.cache.items {
		switch v := value.(type) {
		case []Interview:
			for _, item := range v {
				if item.ID == id {
					return item.EmployeeID
				}
			}
		case *EmployeeDetails:
			for _, item := range v.Interviews {
				if item.ID == id {
					return key.id
				}
			}
		}
	}
	return ""
}
