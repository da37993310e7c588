package handler

import (
	"time"

	"github.com/cementrack/tracking-api/internal/core/domain"
	"github.com/cementrack/tracking-api/internal/core/ports"
)

func fmtTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func fmtTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := fmtTime(*t)
	return &s
}

func toDeliveryResponse(d *domain.Delivery) deliveryResponse {
	return deliveryResponse{
		ID:                 d.ID,
		TrackingCode:       d.TrackingCode,
		CustomerID:         d.CustomerID,
		Status:             string(d.Status),
		CementType:         d.CementType,
		Quantity:           d.Quantity,
		OriginAddress:      d.OriginAddress,
		DestinationAddress: d.DestinationAddress,
		DestinationLat:     d.DestinationLat,
		DestinationLng:     d.DestinationLng,
		DriverName:         d.DriverName,
		DriverPhone:        d.DriverPhone,
		VehiclePlate:       d.VehiclePlate,
		Notes:              d.Notes,
		EstimatedArrival:   fmtTimePtr(d.EstimatedArrival),
		ActualArrival:      fmtTimePtr(d.ActualArrival),
		CreatedAt:          fmtTime(d.CreatedAt),
		UpdatedAt:          fmtTime(d.UpdatedAt),
	}
}

func toUpdateResponses(updates []*domain.TrackingUpdate) []trackingUpdateResponse {
	out := make([]trackingUpdateResponse, 0, len(updates))
	for _, u := range updates {
		out = append(out, trackingUpdateResponse{
			Status:    string(u.Status),
			Latitude:  u.Latitude,
			Longitude: u.Longitude,
			Notes:     u.Notes,
			CreatedAt: fmtTime(u.CreatedAt),
		})
	}
	return out
}

func toDetailResponse(detail *ports.DeliveryDetail) deliveryDetailResponse {
	resp := deliveryDetailResponse{
		deliveryResponse: toDeliveryResponse(detail.Delivery),
		Updates:          toUpdateResponses(detail.Updates),
	}
	if detail.Customer != nil {
		resp.Customer = &customerSummary{
			ID:    detail.Customer.ID,
			Name:  detail.Customer.Name,
			Phone: detail.Customer.Phone,
		}
	}
	return resp
}

func toPublicResponse(pd *ports.PublicDelivery) publicDeliveryResponse {
	resp := publicDeliveryResponse{
		TrackingCode:       pd.TrackingCode,
		Status:             string(pd.Status),
		CementType:         pd.CementType,
		Quantity:           pd.Quantity,
		CustomerName:       pd.CustomerName,
		OriginAddress:      pd.OriginAddress,
		DestinationAddress: pd.DestinationAddress,
		DestinationLat:     pd.DestinationLat,
		DestinationLng:     pd.DestinationLng,
		DriverName:         pd.DriverName,
		DriverPhone:        pd.DriverPhone,
		VehiclePlate:       pd.VehiclePlate,
		EstimatedArrival:   fmtTimePtr(pd.EstimatedArrival),
		ActualArrival:      fmtTimePtr(pd.ActualArrival),
		CreatedAt:          fmtTime(pd.CreatedAt),
		UpdatedAt:          fmtTime(pd.UpdatedAt),
		Updates:            make([]trackingUpdateResponse, 0, len(pd.Updates)),
	}
	for _, u := range pd.Updates {
		resp.Updates = append(resp.Updates, trackingUpdateResponse{
			Status:    string(u.Status),
			Latitude:  u.Latitude,
			Longitude: u.Longitude,
			Address:   u.Address,
			Notes:     u.Notes,
			CreatedAt: fmtTime(u.CreatedAt),
		})
	}
	return resp
}
