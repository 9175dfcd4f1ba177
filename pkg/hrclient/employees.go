package hrclient

import (
	"context"
	"net/http"
	"net/url"
)

type EmployeesAPI struct {
	c *Client
}

// List is never cached; search results go stale too easily.
func (a *EmployeesAPI) List(ctx context.Context, search string) ([]Employee, error) {
	path := "/employees"
	if search != "" {
		path += "?" + url.Values{"search": {search}}.Encode()
	}

	var out []Employee
	if err := a.c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get serves from the cache when it can.
func (a *EmployeesAPI) Get(ctx context.Context, id string) (*EmployeeDetails, error) {
	if details, ok := cached[*EmployeeDetails](a.c.cache, kindEmployee, id); ok {
		return details, nil
	}

	var out EmployeeDetails
	if err := a.c.do(ctx, http.MethodGet, "/employees/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	a.c.cache.set(kindEmployee, id, &out)
	return &out, nil
}

func (a *EmployeesAPI) Create(ctx context.Context, req CreateEmployeeRequest) (*Employee, error) {
	var out Employee
	if err := a.c.do(ctx, http.MethodPost, "/employees", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *EmployeesAPI) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (*EmployeeDetails, error) {
	var out EmployeeDetails
	if err := a.c.do(ctx, http.MethodPut, "/employees/"+url.PathEscape(id), req, &out); err != nil {
		return nil, err
	}
	a.c.cache.set(kindEmployee, id, &out)
	return &out, nil
}

func (a *EmployeesAPI) Delete(ctx context.Context, id string) error {
	if err := a.c.do(ctx, http.MethodDelete, "/employees/"+url.PathEscape(id), nil, nil); err != nil {
		return err
	}
	a.c.cache.InvalidateEmployee(id)
	return nil
}
