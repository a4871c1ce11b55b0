package handlers

import (
	"encoding/json"

	"paquexpress-service/internal/domain"
)

func sessionToResponse(s domain.Session) loginResponse {
	return loginResponse{
		ID:        s.User.ID,
		Name:      s.User.Name,
		Email:     s.User.Email,
		Role:      string(s.User.Role),
		Token:     s.Token,
		TokenType: s.TokenType,
		ExpiresAt: s.ExpiresAt,
	}
}

func packageToResponse(p domain.Package) packageDTO {
	out := packageDTO{
		ID:           p.ID,
		TrackingCode: p.TrackingCode,
		Address:      p.Address,
		State:        string(p.State),
	}
	if p.Destination != nil {
		lat := json.Number(p.Destination.Lat.String())
		lng := json.Number(p.Destination.Lng.String())
		out.Lat, out.Lng = &lat, &lng
	}
	return out
}

func packagesToResponse(list []domain.Package) []packageDTO {
	out := make([]packageDTO, 0, len(list))
	for _, p := range list {
		out = append(out, packageToResponse(p))
	}
	return out
}
